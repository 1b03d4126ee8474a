// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package jobs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/epg365/internal/cache"
	"github.com/ManuGH/epg365/internal/epg"
	"github.com/ManuGH/epg365/internal/metrics"
	"github.com/ManuGH/epg365/internal/provider"
)

const channelsDoc = `<?xml version="1.0" encoding="UTF-8"?>
<s loga="http://epg.test/loga/">
  <a id="1"><n>ČT1</n><o>ct1.png</o><p>České</p></a>
  <a id="805"><n>ČT art</n><o>ctart.png</o><p>České</p></a>
  <a id="804"><n>ČT :D</n><o>ctd.png</o><p>České</p></a>
  <a id="900"><n>ORF 1</n><o>orf.png</o><p>Rakouské</p></a>
</s>`

const listingDoc = `<?xml version="1.0" encoding="UTF-8"?>
<x>
  <p o="2024-03-09 20:15:00"><t>S</t></p>
  <p o="2024-03-09 22:00:00"><t>F</t></p>
</x>`

const descriptionDoc = `<?xml version="1.0" encoding="UTF-8"?>
<a>
  <n>Some Show (2/6) III</n>
  <i><t>Seriál</t></i>
  <s o="2024-03-09 20:15:00" d="2024-03-09 21:10:00"/>
</a>`

// fakeCache serves documents by key and records requested URLs.
type fakeCache struct {
	docs map[string]string
	errs map[string]error
	urls []string
}

func (f *fakeCache) Get(ctx context.Context, url, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.urls = append(f.urls, url)
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	doc, ok := f.docs[key]
	if !ok {
		return nil, &provider.TransportError{URL: url, Err: errors.New("connection refused")}
	}
	return []byte(doc), nil
}

func newFixture() *fakeCache {
	return &fakeCache{
		docs: map[string]string{
			ChannelsKey:              channelsDoc,
			"1-20240309.xml":         `<x><p></x>`,
			"1-20240310.xml":         `<x></x>`,
			"804-20240309.xml":       listingDoc,
			"804-20240309201500.xml": descriptionDoc,
		},
		errs: map[string]error{},
	}
}

func fixedNow() time.Time {
	return time.Date(2024, 3, 9, 10, 30, 0, 0, time.Local)
}

func newDeps(c Cache, guide *metrics.Guide) Deps {
	return Deps{
		Cache:     c,
		URLs:      provider.NewURLs("http://epg.test/", "cz"),
		Assembler: epg.NewAssembler(epg.Options{}),
		Metrics:   guide,
		Now:       fixedNow,
	}
}

func TestRefresh_EndToEnd(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := newFixture()
	deps := newDeps(c, metrics.NewGuide(reg))

	report, err := Refresh(context.Background(), deps, Options{Days: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Channels)
	assert.Equal(t, 1, report.Programmes)
	assert.Equal(t, []ChannelCount{
		{ID: "1-ct1", Name: "ČT1", Programmes: 0},
		{ID: "804-ct-d", Name: "ČT :D", Programmes: 1},
	}, report.PerChannel)

	require.Len(t, report.Skips, 3)
	assert.Equal(t, Skip{ChannelID: "1", Day: "2024-03-09", Stage: StageListing}, withoutErr(report.Skips[0]))
	assert.Equal(t, Skip{ChannelID: "804", Day: "2024-03-09", Ref: "20240309220000", Stage: StageDescription}, withoutErr(report.Skips[1]))
	assert.Equal(t, Skip{ChannelID: "804", Day: "2024-03-10", Stage: StageListing}, withoutErr(report.Skips[2]))
	assert.ErrorIs(t, report.Skips[1].Err, provider.ErrUnavailable)
	assert.Equal(t, map[string]int{StageListing: 2, StageDescription: 1}, report.SkipsByStage())

	tv := deps.Assembler.Document()
	require.Len(t, tv.Programmes, 1)
	p := tv.Programmes[0]
	assert.Equal(t, "804-ct-d", p.Channel)
	assert.Equal(t, "Some Show", p.Title.Value)
	require.NotNil(t, p.EpisodeNum)
	assert.Equal(t, "2.1/6.0/1", p.EpisodeNum.Value)

	out, err := epg.Render(tv)
	require.NoError(t, err)
	assert.NotContains(t, string(out), `id="805`)
	assert.Contains(t, string(out), `<icon src="http://epg.test/loga/ctd.png"></icon>`)

	for _, u := range c.urls {
		assert.NotContains(t, u, "id_tv=805", "alias must not be fetched")
		assert.NotContains(t, u, "id_tv=900", "filtered group must not be fetched")
	}

	expected := `
# HELP epg365_programmes_total Programmes written to the guide
# TYPE epg365_programmes_total counter
epg365_programmes_total 1
# HELP epg365_skipped_items_total Listing days or shows skipped because a document was missing or malformed
# TYPE epg365_skipped_items_total counter
epg365_skipped_items_total{stage="description"} 1
epg365_skipped_items_total{stage="listing"} 2
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"epg365_programmes_total", "epg365_skipped_items_total"))
}

func withoutErr(s Skip) Skip {
	s.Err = nil
	return s
}

func TestRefresh_ChannelListFailureIsFatal(t *testing.T) {
	c := newFixture()
	c.errs[ChannelsKey] = &provider.StatusError{URL: "http://epg.test/v5-tv.php", Status: 500}

	_, err := Refresh(context.Background(), newDeps(c, nil), Options{Days: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, provider.ErrBadStatus)
}

func TestRefresh_MalformedChannelListIsFatal(t *testing.T) {
	c := newFixture()
	c.docs[ChannelsKey] = `<html><body>placeholder</body></html>`

	_, err := Refresh(context.Background(), newDeps(c, nil), Options{Days: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel list")
}

func TestRefresh_CacheIOErrorAborts(t *testing.T) {
	c := newFixture()
	c.errs["804-20240309201500.xml"] = &cache.IOError{Op: "write", Path: "/cache/804-20240309201500.xml", Err: errors.New("disk full")}

	_, err := Refresh(context.Background(), newDeps(c, nil), Options{Days: 1})
	require.Error(t, err)
	assert.True(t, cache.IsIOError(err))
}

func TestRefresh_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Refresh(ctx, newDeps(newFixture(), nil), Options{Days: 1})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRefresh_GroupsOption(t *testing.T) {
	c := newFixture()
	c.docs["900-20240309.xml"] = `<x></x>`

	deps := newDeps(c, nil)
	report, err := Refresh(context.Background(), deps, Options{Days: 1, Groups: []string{"Rakouské"}})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Channels)
	assert.Empty(t, report.Skips)
	require.Len(t, deps.Assembler.Document().Channels, 1)
	assert.Equal(t, "900-orf-1", deps.Assembler.Document().Channels[0].ID)
}

func TestRefresh_InvalidArguments(t *testing.T) {
	_, err := Refresh(context.Background(), Deps{}, Options{Days: 1})
	require.Error(t, err)

	_, err = Refresh(context.Background(), newDeps(newFixture(), nil), Options{Days: 0})
	require.Error(t, err)
}

func TestKeys(t *testing.T) {
	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "804-20240309.xml", ListingKey("804", day))
	assert.Equal(t, "804-20240309201500.xml", DescriptionKey("804", "20240309201500"))

	got, ok := cache.KeyDate(DescriptionKey("804", "20240309201500"), time.UTC)
	require.True(t, ok)
	assert.Equal(t, day, got)
}
