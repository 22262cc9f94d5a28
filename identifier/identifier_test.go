package identifier

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Normalize", t, func() {
		Convey("Should accept the supported URL shapes", func() {
			for _, url := range []string{
				"https://www.youtube.com/watch?v=dQw4w9WgXcQ&feature=share",
				"https://youtu.be/dQw4w9WgXcQ",
				"https://www.youtube.com/v/dQw4w9WgXcQ?version=3",
				"https://www.youtube.com/vi/dQw4w9WgXcQ",
				"https://www.youtube.com/embed/dQw4w9WgXcQ#t=10",
				"https://www.youtube.com/user/Someone#p/u/1/dQw4w9WgXcQ",
				"https://www.youtube.com/watch?vi=dQw4w9WgXcQ",
				"https://www.youtube.com/watch?feature=player_embedded&v=dQw4w9WgXcQ",
				"https://www.youtube.com/watch?feature=share&vi=dQw4w9WgXcQ",
				"https://www.youtube.com/?v=dQw4w9WgXcQ",
			} {
				id, err := Normalize(url)
				So(err, ShouldBeNil)
				So(id, ShouldEqual, "dQw4w9WgXcQ")
				So(id, ShouldHaveLength, Length)
			}
		})

		Convey("Should stop the identifier at '&'", func() {
			id, err := Normalize("https://www.youtube.com/watch?v=dQw4w9WgXcQ&feature=share")
			So(err, ShouldBeNil)
			So(id, ShouldEqual, "dQw4w9WgXcQ")
		})

		Convey("Should fail on strings without a candidate", func() {
			for _, url := range []string{"not a url", "", "https://example.com/", "https://www.youtube.com/feed/trending"} {
				_, err := Normalize(url)
				So(err, ShouldEqual, ErrNotFound)
			}
		})

		Convey("Should reject candidates of the wrong length", func() {
			_, err := Normalize("https://www.youtube.com/watch?v=short")
			So(err, ShouldEqual, ErrNotFound)

			_, err = Normalize("https://youtu.be/dQw4w9WgXcQtoolong")
			So(err, ShouldEqual, ErrNotFound)
		})

		Convey("Should skip a truncated candidate and take a later valid one", func() {
			id, err := Normalize("https://www.youtube.com/v/abc?v=dQw4w9WgXcQ")
			So(err, ShouldBeNil)
			So(id, ShouldEqual, "dQw4w9WgXcQ")
		})

		Convey("Should be deterministic", func() {
			url := "https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1"
			first, err1 := Normalize(url)
			second, err2 := Normalize(url)
			So(err1, ShouldBeNil)
			So(err2, ShouldBeNil)
			So(first, ShouldEqual, second)
		})
	})
}

func TestValid(t *testing.T) {
	Convey("Valid", t, func() {
		So(Valid("dQw4w9WgXcQ"), ShouldBeTrue)
		So(Valid("short"), ShouldBeFalse)
		So(Valid("dQw4w9WgXc#"), ShouldBeFalse)
	})
}
