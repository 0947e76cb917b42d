// Package equipment resolves equipment codes into performance profiles.
//
// Seat counts come from an EquipmentCapacityLookup chain (airline seat map,
// normalized catalog token, fuzzy catalog token) with a fixed default when
// nothing matches. The seat count then selects a category which fixes cruise
// speed, turn time and range.
package equipment
