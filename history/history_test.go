package history

import (
	"testing"

	"github.com/natty-misc/ymd3/filesystem"
	"github.com/natty-misc/ymd3/media"
	"github.com/samber/mo"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given an extraction result", t, func() {
		So(Clear(), ShouldBeNil)

		result := &media.Result{
			OriginalURL:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			VideoName:    "Title",
			VideoAuthor:  mo.Some("Someone"),
			DownloadURLs: []string{"https://cdn.test/a.mp4"},
		}

		Convey("When saving it", func() {
			err := Save("dQw4w9WgXcQ", "youtube", result)
			Convey("Then the error should be nil", func() {
				So(err, ShouldBeNil)

				Convey("And the record should be stored", func() {
					records, err := Get()
					So(err, ShouldBeNil)
					So(records, ShouldHaveLength, 1)
					So(records["dQw4w9WgXcQ (youtube)"].Result.VideoName, ShouldEqual, "Title")
				})

				Convey("And saving again should replace it", func() {
					So(Save("dQw4w9WgXcQ", "youtube", result), ShouldBeNil)
					records, err := Get()
					So(err, ShouldBeNil)
					So(records, ShouldHaveLength, 1)
				})

				Convey("And a different program should get its own record", func() {
					So(Save("dQw4w9WgXcQ", "mirror", result), ShouldBeNil)
					records, err := List()
					So(err, ShouldBeNil)
					So(records, ShouldHaveLength, 2)
					So(records[0].Program, ShouldEqual, "mirror")
				})

				Convey("And removing it should leave nothing", func() {
					records, err := List()
					So(err, ShouldBeNil)
					So(Remove(records[0]), ShouldBeNil)

					records, err = List()
					So(err, ShouldBeNil)
					So(records, ShouldBeEmpty)
				})
			})
		})
	})
}

func TestSearch(t *testing.T) {
	Convey("Given records from two programs", t, func() {
		So(Clear(), ShouldBeNil)

		rick, err := media.New("https://www.youtube.com/watch?v=dQw4w9WgXcQ", "Never Gonna Give You Up", mo.None[string](), "https://cdn.test/a.mp4")
		So(err, ShouldBeNil)
		cat, err := media.New("https://video.test/AAAAAAAAAAA", "Keyboard Cat", mo.None[string](), "https://cdn.test/b.mp4")
		So(err, ShouldBeNil)

		So(Save("dQw4w9WgXcQ", "youtube", rick), ShouldBeNil)
		So(Save("AAAAAAAAAAA", "my_site", cat), ShouldBeNil)

		Convey("An empty query returns everything", func() {
			records, err := Search("")
			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 2)
		})

		Convey("A query matches the video name ignoring case", func() {
			records, err := Search("keyboard")
			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 1)
			So(records[0].ID, ShouldEqual, "AAAAAAAAAAA")
		})

		Convey("A query matches the program with gaps", func() {
			records, err := Search("ytb")
			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 1)
			So(records[0].Program, ShouldEqual, "youtube")
		})

		Convey("An unrelated query matches nothing", func() {
			records, err := Search("zzz")
			So(err, ShouldBeNil)
			So(records, ShouldBeEmpty)
		})
	})
}
