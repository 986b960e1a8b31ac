package scraper

import (
	"testing"
	"time"
)

// Reference day used by the fixtures below: academic year 2025.
var testToday = time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const macroPage = `<!DOCTYPE html>
<html><head><title>Macroeconomics Workshop</title></head>
<body>
<h2>Upcoming Seminars</h2>
<p>Date &amp; Time:</p><p>October 2 (Thu) 16:50-18:35</p>
<p>Venue:</p><p>Room 3, Economics Research Building</p>
<p>Speaker:</p><p>Jane Doe (Stanford)</p>
<p>Title:</p><p>“Monetary Policy at the ZLB”</p>
<p>Date &amp; Time:</p><p>October 9 (Thu) 16:50-18:35</p>
<p>Venue:</p><p>Room 3</p>
<p>Speaker:</p><p>TBA</p>
<p>Date &amp; Time:</p><p>January 15 (Thu) 16:50-18:35</p>
<p>Speaker:</p><p>John Roe (LSE)</p><p>Title: Fiscal Rules</p>
<p>Date &amp; Time:</p><p>July 3 (Thu) 16:50-18:35</p>
<p>Speaker:</p><p>Past Person</p>
<h2>Past Seminars</h2>
<p>Date &amp; Time:</p><p>November 6 (Thu)</p>
<p>Speaker:</p><p>Should Not Appear</p>
</body></html>`

const urbanPage = `<html><head><meta charset="utf-8"><title>都市経済学ワークショップ</title></head>
<body>
<h3>今後の予定</h3>
<p>日時</p><p>2025年10月7日（火）16:50-18:20</p>
<p>場所</p><p>小島ホール</p>
<p>報告</p><p>山田太郎（東京大学）</p><p>「都市の集積と生産性」</p>
<p>要旨</p><p>本報告では集積の経済を分析する。</p>
<p>日時</p><p>2025年11月4日（火）</p>
<p>報告</p>
<p>Abstract</p><p>To be posted.</p>
<p>日時：2025年12月2日（火）</p>
<p>報告者：佐藤花子（京都大学）</p>
<p>Past Seminars</p>
<p>日時</p><p>2025年6月3日（火）</p>
<p>報告</p><p>過去の報告者</p>
</body></html>`

const statsPage = `<html><body>
<h3>統計学ワークショップ</h3>
<p>日時</p><p>未定</p>
<p>報告</p><p>鈴木一郎（一橋大学）</p>
<p>日時</p><p>2025年10月15日（水）</p>
<p>報告</p><p>講演者 tba</p>
<p>日時</p><p>2025年4月16日（水）</p>
<p>報告</p><p>過去の報告</p>
<p>日時</p><p>2026年2月4日（水）</p>
<p>報告</p><p>高橋次郎</p><p>Title: ベイズ推定の新展開</p>
<p>Abstract: We propose a new sampler.</p>
</body></html>`

const empiricalPage = `<html><body>
<h2>Empirical Microeconomics Workshop</h2>
<p>October 6 (Mon) 12:15-13:30</p>
<p>Speaker &amp; Title</p>
<p>Alice Smith (Yale)</p>
<p>"Peer Effects in Classrooms"</p>
<p>Abstract: We study peers.</p>
<p>Speaker and Title</p>
<p>Bob Brown (MIT)</p>
<p>Labor Supply</p>
<p>Venue: Room 1</p>
<p>Nov 10 (Mon) 12:15-13:30</p>
<p>Speaker &amp; Title</p>
<p>TBA</p>
<p>以下本年度終了分</p>
<p>June 2 (Mon)</p>
<p>Speaker &amp; Title</p>
<p>Old Talk</p>
</body></html>`

// microListPage is rendered with the detail base URL substituted for %[1]s.
const microListPage = `<html><body>
<div class="tribe-events-calendar-list__event-wrapper">
  <time datetime="2025-10-03">October 3</time>
  <h3><a class="tribe-events-calendar-list__event-title-link" href="/event/a/">Microeconomic Theory Workshop</a></h3>
</div>
<div class="tribe-events-calendar-list__event-wrapper">
  <time datetime="2025-08-01">August 1</time>
  <h3><a class="tribe-events-calendar-list__event-title-link" href="/event/past/">Old</a></h3>
</div>
<div class="tribe-events-calendar-list__event-wrapper">
  <time datetime="2025-10-10T16:50:00+09:00">October 10</time>
  <h3><a class="tribe-events-calendar-list__event-title-link" href="%[1]s/event/b/">No title</a></h3>
</div>
<div class="tribe-events-calendar-list__event-wrapper">
  <time datetime="2025-10-17">October 17</time>
  <h3><a class="tribe-events-calendar-list__event-title-link" href="event/c/">TBA</a></h3>
</div>
<div class="tribe-events-calendar-list__event-wrapper">
  <h3><a class="tribe-events-calendar-list__event-title-link" href="/event/nodate/">No date</a></h3>
</div>
</body></html>`

const microDetailA = `<html><body>
<h1>Jane Doe (Stanford)　Microeconomic Theory Workshop</h1>
<p>Date: October 3</p>
<p>Title: Mechanism Design with Transfers</p>
</body></html>`

const microDetailB = `<html><body>
<h1>Bob Brown Microeconomic Theory Workshop</h1>
<p>Abstract only.</p>
</body></html>`

const microDetailC = `<html><body>
<h1>John Roe Microeconomic Theory Workshop</h1>
<p>タイトル：TBA</p>
</body></html>`

// sourceByName returns the configured extractor with the given key.
func sourceByName(t *testing.T, f Fetcher, name string) Extractor {
	t.Helper()
	for _, ex := range Sources(f, nil) {
		if ex.Name() == name {
			return ex
		}
	}
	t.Fatalf("no source named %q", name)
	return nil
}

func lineSource(t *testing.T, name string) *LineSource {
	t.Helper()
	ls, ok := sourceByName(t, nil, name).(*LineSource)
	if !ok {
		t.Fatalf("source %q is not a LineSource", name)
	}
	return ls
}
