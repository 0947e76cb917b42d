// Package routes holds the route table sources: CSV files, SQLite and
// PostgreSQL tables and inline static rows. Each registers itself with
// core/routes under its type name.
package routes

import (
	"context"
	"time"

	"github.com/routeopt/fleetsim/core/factory"
	"github.com/routeopt/fleetsim/core/model"
	coreroutes "github.com/routeopt/fleetsim/core/routes"
)

// connectTimeout bounds schema creation and the initial ping.
const connectTimeout = 10 * time.Second

type csvConf struct {
	Path string `json:"path"`
}

type sqlConf struct {
	Path         string `json:"path"`
	DSN          string `json:"dsn"`
	Table        string `json:"table"`
	CreateSchema bool   `json:"create_schema"`
}

type staticConf struct {
	Rows []model.RouteRow `json:"rows"`
}

func init() {
	_ = coreroutes.RegisterSource("csv", func(m map[string]any) (coreroutes.Source, error) {
		var c csvConf
		if err := factory.Decode(m, &c); err != nil {
			return nil, err
		}
		return NewCSVSource(c.Path)
	})
	_ = coreroutes.RegisterSource("sqlite", func(m map[string]any) (coreroutes.Source, error) {
		var c sqlConf
		if err := factory.Decode(m, &c); err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		return NewSQLiteSource(ctx, c.Path, c.Table, c.CreateSchema)
	})
	_ = coreroutes.RegisterSource("postgres", func(m map[string]any) (coreroutes.Source, error) {
		var c sqlConf
		if err := factory.Decode(m, &c); err != nil {
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		src, err := NewPostgresSource(ctx, c.DSN, c.Table)
		if err != nil {
			return nil, err
		}
		if c.CreateSchema {
			if err := src.EnsureSchema(ctx); err != nil {
				_ = src.Close()
				return nil, err
			}
		}
		return src, nil
	})
	_ = coreroutes.RegisterSource("static", func(m map[string]any) (coreroutes.Source, error) {
		var c staticConf
		if err := factory.Decode(m, &c); err != nil {
			return nil, err
		}
		return coreroutes.Static(c.Rows), nil
	})
}
