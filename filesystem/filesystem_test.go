package filesystem

import (
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/afero"
)

func TestApi(t *testing.T) {
	Convey("Filesystem API", t, func() {
		Convey("Should default to OsFs", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("Should switch to MemMapFs", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")
		})

		Convey("Should accept an explicit backend", func() {
			fs := afero.NewMemMapFs()
			So(afero.WriteFile(fs, "/scripts/a.lua", []byte("x"), 0o644), ShouldBeNil)

			Set(fs)
			data, err := API().ReadFile("/scripts/a.lua")
			So(err, ShouldBeNil)
			So(string(data), ShouldEqual, "x")
		})
	})
}

func TestGacheFs(t *testing.T) {
	Convey("Given the gache adapter over an in-memory backend", t, func() {
		SetMemMapFs()
		var fs GacheFs

		Convey("It should create directories and files through the backend", func() {
			So(fs.MkdirAll("/cache", os.ModePerm), ShouldBeNil)

			f, err := fs.OpenFile("/cache/entry.json", os.O_CREATE|os.O_RDWR, 0o644)
			So(err, ShouldBeNil)
			_, err = f.Write([]byte("{}"))
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)

			exists, err := API().Exists("/cache/entry.json")
			So(err, ShouldBeNil)
			So(exists, ShouldBeTrue)
		})
	})
}
