package config_test

import (
	"context"
	"testing"

	"github.com/okian/ladder/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.ResetSecret, convey.ShouldEqual, "0000")
			convey.So(cfg.MatchLogCapacity, convey.ShouldEqual, 5)
			convey.So(cfg.StorageDriver, convey.ShouldEqual, "file")
			convey.So(cfg.StoragePath, convey.ShouldEqual, "data")
			convey.So(cfg.RedisPrefix, convey.ShouldEqual, "ladder")
		})

		convey.Convey("Then the defaults validate", func() {
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
