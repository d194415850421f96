package scraper

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"

	"carworks/caranalyzer/normalizer"
)

// Listing table column names. They match the headers the analyzer expects.
const (
	ColModel       = "車種名"
	ColVariant     = "モデル"
	ColGrade       = "グレード"
	ColPrice       = "支払総額"
	ColYear        = "年式"
	ColMileage     = "走行距離"
	ColRepair      = "修復歴"
	ColGearbox     = "ミッション"
	ColEngine      = "排気量"
	ColScrapedAt   = "取得日時"
	ColSourceURL   = "ソースURL"
	missingValue   = "情報なし"
	priceByRequest = "応談"
)

var listingColumns = []string{
	ColModel, ColVariant, ColGrade, ColPrice, ColYear, ColMileage,
	ColRepair, ColGearbox, ColEngine, ColScrapedAt, ColSourceURL,
}

var nextPageExpr = regexp.MustCompile(`location\.href='([^']*)'`)

var carNameRules = []struct {
	selector string
	expr     *regexp.Regexp
}{
	{"h2.title1", regexp.MustCompile(`(.+?)（全国）の中古車`)},
	{"h1", regexp.MustCompile(`(.+?)\s*の中古車`)},
	{"title", regexp.MustCompile(`(.+?)\s*の中古車`)},
}

// Options tunes a Scanner.
type Options struct {
	MaxPages     int
	ItemsPerPage int
	Delay        time.Duration
	UserAgent    string
}

// Scanner crawls carsensor search-result pages and extracts one row per
// listed vehicle.
type Scanner struct {
	client *http.Client
	logger *log.Logger
	opts   Options
}

// New wires an HTTP client; maxPages defaults to 10 and itemsPerPage to 30.
func New(client *http.Client, logger *log.Logger, opts Options) *Scanner {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = 10
	}
	if opts.ItemsPerPage <= 0 {
		opts.ItemsPerPage = 30
	}
	return &Scanner{client: client, logger: logger, opts: opts}
}

// Scrape walks the result pages starting at pageURL and returns the listing
// table together with the car name extracted from the first page.
func (s *Scanner) Scrape(ctx context.Context, pageURL string) (normalizer.Table, string, error) {
	table := normalizer.Table{Columns: append([]string(nil), listingColumns...)}
	carName := ""
	current := pageURL

	for page := 1; current != "" && page <= s.opts.MaxPages; page++ {
		s.logf("processing page %d: %s", page, current)
		doc, err := s.fetchDocument(ctx, current)
		if err != nil {
			return table, carName, fmt.Errorf("page %d: %w", page, err)
		}
		if page == 1 {
			carName = extractCarName(doc)
			if carName == "" {
				s.logf("could not determine car name for %s", pageURL)
				carName = "Unknown"
			}
		}

		items := doc.Find("div.cassette.js_listTableCassette")
		if items.Length() == 0 {
			s.logf("no vehicle items found on page %d", page)
			break
		}
		count := 0
		items.EachWithBreak(func(_ int, item *goquery.Selection) bool {
			if count >= s.opts.ItemsPerPage {
				return false
			}
			row := parseItem(item, carName)
			row[ColSourceURL] = current
			table.Rows = append(table.Rows, row)
			count++
			return true
		})

		next := nextPageURL(doc, current)
		if next == "" {
			break
		}
		if err := s.wait(ctx, s.opts.Delay); err != nil {
			return table, carName, err
		}
		current = next
	}
	s.logf("scrape finished: %d listings", len(table.Rows))
	return table, carName, nil
}

func (s *Scanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if s.opts.UserAgent != "" {
		req.Header.Set("User-Agent", s.opts.UserAgent)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("carsensor returned %s", resp.Status)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

func extractCarName(doc *goquery.Document) string {
	for _, rule := range carNameRules {
		element := doc.Find(rule.selector).First()
		if element.Length() == 0 {
			continue
		}
		m := rule.expr.FindStringSubmatch(element.Text())
		if m == nil {
			continue
		}
		full := strings.TrimSpace(m[1])
		fields := strings.Fields(full)
		if len(fields) > 0 {
			full = fields[len(fields)-1]
		}
		parts := strings.Split(full, "・")
		return parts[len(parts)-1]
	}
	return ""
}

func parseItem(item *goquery.Selection, carName string) map[string]string {
	title := cleanText(item.Find("h3.cassetteMain__title").First().Text())
	if title == "" {
		title = missingValue
	}
	grade := strings.TrimSpace(strings.Replace(title, carName, "", 1))

	variant := cleanText(item.Find("p.cassetteMain__tag").First().Text())
	if variant == "" {
		variant = missingValue
	}

	price := cleanText(item.Find("div.totalPrice p.totalPrice__content").First().Text())
	if price == "" {
		price = priceByRequest
	}

	specs := map[string]string{
		ColYear:    missingValue,
		ColMileage: missingValue,
		ColRepair:  missingValue,
		ColGearbox: missingValue,
		ColEngine:  missingValue,
	}
	item.Find("dl.specList > div.specList__detailBox").Each(func(_ int, box *goquery.Selection) {
		label := cleanText(box.Find("dt").First().Text())
		value := cleanText(box.Find("dd").First().Text())
		if _, ok := specs[label]; ok && value != "" {
			specs[label] = value
		}
	})

	return map[string]string{
		ColModel:     carName,
		ColVariant:   variant,
		ColGrade:     grade,
		ColPrice:     price,
		ColYear:      specs[ColYear],
		ColMileage:   specs[ColMileage],
		ColRepair:    specs[ColRepair],
		ColGearbox:   specs[ColGearbox],
		ColEngine:    specs[ColEngine],
		ColScrapedAt: time.Now().Format(time.RFC3339),
	}
}

func nextPageURL(doc *goquery.Document, current string) string {
	button := doc.Find("button.pager__btn__next:not([disabled])").First()
	onclick, exists := button.Attr("onclick")
	if !exists {
		return ""
	}
	m := nextPageExpr.FindStringSubmatch(onclick)
	if m == nil {
		return ""
	}
	base, err := url.Parse(current)
	if err != nil {
		return ""
	}
	next, err := url.Parse(m[1])
	if err != nil {
		return ""
	}
	return base.ResolveReference(next).String()
}

func (s *Scanner) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// cleanText normalizes scraped fragments: NFKC folding plus whitespace
// collapsing, matching how table cells are cleaned at parse time.
func cleanText(s string) string {
	return strings.Join(strings.Fields(norm.NFKC.String(s)), " ")
}

func (s *Scanner) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

// ReadURLList loads the scrape targets, one URL per line; blank lines and
// '#' comments are skipped.
func ReadURLList(path string) ([]string, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan url list: %w", err)
	}
	return urls, nil
}
