package retriever

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/natty-misc/ymd3/engine"
	"github.com/natty-misc/ymd3/filesystem"
	"github.com/natty-misc/ymd3/history"
	"github.com/natty-misc/ymd3/identifier"
	"github.com/natty-misc/ymd3/key"
	"github.com/natty-misc/ymd3/script"
	"github.com/samber/lo"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

const root = "/scripts"

var runtime *engine.Engine

func TestMain(m *testing.M) {
	runtime = lo.Must(engine.New())
	code := m.Run()
	runtime.Close()
	os.Exit(code)
}

type pages struct{}

func (pages) Fetch(_ context.Context, url string) ([]byte, error) {
	id, ok := strings.CutPrefix(url, "https://video.test/")
	if !ok || strings.HasPrefix(id, "broken") {
		return nil, fmt.Errorf("request failed: %s", url)
	}
	return []byte("Video " + id), nil
}

const program = `
ymd.videoURL = "https://www.youtube.com/watch?v=" .. ymd.inputURL
ymd.videoName = ymd.retrieve("https://video.test/" .. ymd.inputURL)
ymd.downloadURL = "https://cdn.test/" .. ymd.inputURL .. ".mp4"
`

func setup() *Retriever {
	filesystem.SetMemMapFs()
	lo.Must0(filesystem.API().MkdirAll(root, os.ModePerm))
	lo.Must0(filesystem.API().WriteFile(filepath.Join(root, "dom.lua"), []byte(""), os.ModePerm))
	lo.Must0(filesystem.API().WriteFile(filepath.Join(root, "test.lua"), []byte(program), os.ModePerm))
	lo.Must0(history.Clear())

	viper.Set(key.HistorySave, true)
	viper.Set(key.ExtractWorkers, 2)

	return New(runtime, script.Options{Root: root, Bootstrap: "dom", Fetcher: pages{}})
}

func TestRetrieve(t *testing.T) {
	Convey("Given a retriever", t, func() {
		r := setup()

		Convey("A URL should be normalized and extracted", func() {
			result, err := r.Retrieve(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ&feature=share", "test")
			So(err, ShouldBeNil)
			So(result.VideoName, ShouldEqual, "Video dQw4w9WgXcQ")
			So(result.DownloadURL(), ShouldEqual, "https://cdn.test/dQw4w9WgXcQ.mp4")

			Convey("And the normalized identifier remembered", func() {
				id, ok := r.identifiers.Get("https://www.youtube.com/watch?v=dQw4w9WgXcQ&feature=share")
				So(ok, ShouldBeTrue)
				So(id, ShouldEqual, "dQw4w9WgXcQ")
			})

			Convey("And recorded in the history", func() {
				records, err := history.Get()
				So(err, ShouldBeNil)
				So(records, ShouldContainKey, "dQw4w9WgXcQ (test)")
			})
		})

		Convey("A URL without an identifier should fail before extraction", func() {
			_, err := r.Retrieve(context.Background(), "not a url", "test")
			So(err, ShouldEqual, identifier.ErrNotFound)
			So(r.identifiers.Contains("not a url"), ShouldBeFalse)
		})

		Convey("An unknown program should fail", func() {
			_, err := r.Retrieve(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "missing")
			So(errors.Is(err, script.ErrNotFound), ShouldBeTrue)
		})

		Convey("History should be skipped when disabled", func() {
			viper.Set(key.HistorySave, false)
			_, err := r.Retrieve(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "test")
			So(err, ShouldBeNil)

			records, err := history.Get()
			So(err, ShouldBeNil)
			So(records, ShouldBeEmpty)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a retriever", t, func() {
		r := setup()

		Convey("A canonical identifier should produce a result", func() {
			result := r.Run(context.Background(), "dQw4w9WgXcQ", "test")
			So(result.IsPresent(), ShouldBeTrue)
			So(result.MustGet().VideoName, ShouldEqual, "Video dQw4w9WgXcQ")
		})

		Convey("Failures should yield no result", func() {
			So(r.Run(context.Background(), "brokenXXXXX", "test").IsAbsent(), ShouldBeTrue)
			So(r.Run(context.Background(), "dQw4w9WgXcQ", "../test").IsAbsent(), ShouldBeTrue)
			So(r.Run(context.Background(), "dQw4w9WgXcQ", "missing").IsAbsent(), ShouldBeTrue)
		})
	})
}

func TestBatch(t *testing.T) {
	Convey("Given several URLs", t, func() {
		r := setup()
		urls := []string{
			"https://youtu.be/aaaaaaaaaaa",
			"not a url",
			"https://youtu.be/brokenXXXXX",
			"https://www.youtube.com/watch?v=bbbbbbbbbbb",
			"https://www.youtube.com/embed/ccccccccccc",
		}

		outcomes := r.Batch(context.Background(), urls, "test")

		Convey("Outcomes should follow input order", func() {
			So(outcomes, ShouldHaveLength, len(urls))
			for i, o := range outcomes {
				So(o.URL, ShouldEqual, urls[i])
			}
		})

		Convey("Each URL should succeed or fail on its own", func() {
			So(outcomes[0].Err, ShouldBeNil)
			So(outcomes[0].Result.VideoName, ShouldEqual, "Video aaaaaaaaaaa")
			So(outcomes[1].Err, ShouldEqual, identifier.ErrNotFound)
			So(errors.Is(outcomes[2].Err, engine.ErrRuntime), ShouldBeTrue)
			So(outcomes[3].Result.VideoName, ShouldEqual, "Video bbbbbbbbbbb")
			So(outcomes[4].Result.VideoName, ShouldEqual, "Video ccccccccccc")
		})
	})
}
