package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/natty-misc/ymd3/filesystem"
	"github.com/natty-misc/ymd3/key"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func TestProgram(t *testing.T) {
	Convey("Given the logging subsystem", t, func() {
		filesystem.SetMemMapFs()

		Convey("When logs are disabled", func() {
			viper.Set(key.LogsWrite, false)
			So(Setup(), ShouldBeNil)

			Convey("Application entries are dropped", func() {
				hook := test.NewGlobal()
				Warnf("hidden %d", 1)
				So(hook.AllEntries(), ShouldBeEmpty)
			})

			Convey("Program diagnostics reach the console", func() {
				var out bytes.Buffer
				Console().SetOutput(&out)
				defer Console().SetOutput(os.Stderr)

				Program("youtube").Error("Runtime error!\nLine: 2")
				Program("youtube").Debug("retrieval details")

				So(out.String(), ShouldContainSubstring, "Runtime error!")
				So(out.String(), ShouldContainSubstring, "program=youtube")
				So(out.String(), ShouldNotContainSubstring, "retrieval details")
			})
		})

		Convey("When logs are enabled", func() {
			viper.Set(key.LogsWrite, true)
			viper.Set(key.LogsLevel, "debug")
			So(Setup(), ShouldBeNil)

			Convey("Program entries carry the program name", func() {
				hook := test.NewGlobal()
				Program("youtube").Info("visible")

				entry := hook.LastEntry()
				So(entry, ShouldNotBeNil)
				So(entry.Message, ShouldEqual, "visible")
				So(entry.Data["program"], ShouldEqual, "youtube")
			})

			Convey("The level follows logs.level", func() {
				So(logrus.GetLevel(), ShouldEqual, logrus.DebugLevel)
			})

			Reset(func() {
				viper.Set(key.LogsWrite, false)
				enabled = false
			})
		})
	})
}
