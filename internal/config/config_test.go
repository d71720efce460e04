package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/okian/teamforge/internal/config"
	"github.com/okian/teamforge/internal/domain/generator"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.QueueSize, convey.ShouldEqual, 1_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.StoreBackend, convey.ShouldEqual, config.BackendMemory)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the generator section matches the generator defaults", func() {
			convey.So(cfg.Generator(), convey.ShouldResemble, generator.DefaultConfig())
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New()

		cases := map[string]func(*config.Config){
			"empty addr":       func(c *config.Config) { c.Addr = "" },
			"zero queue":       func(c *config.Config) { c.QueueSize = 0 },
			"zero workers":     func(c *config.Config) { c.WorkerCount = 0 },
			"tiny roster cap":  func(c *config.Config) { c.MaxRosterSize = 1 },
			"zero list limit":  func(c *config.Config) { c.MaxListLimit = 0 },
			"unknown backend":  func(c *config.Config) { c.StoreBackend = "postgres" },
			"negative weight":  func(c *config.Config) { c.FitnessWeight = -1 },
			"negative epsilon": func(c *config.Config) { c.VarianceThreshold = -0.1 },
		}
		for name, mutate := range cases {
			convey.Convey("When it has "+name, func() {
				mutate(cfg)

				convey.Convey("Then validation fails with ErrInvalidConfig", func() {
					convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}
	})
}
