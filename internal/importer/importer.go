// Package importer reads bank CSV exports dropped into <data dir>/import and
// turns them into feed transactions for the linking flow.
package importer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/pocketledger/pocketledger/internal/linking"
)

// BankTransaction represents a parsed bank CSV row.
type BankTransaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = outflow, positive = inflow
	Reference   string
	Type        string // bank transaction type (ACH_DEBIT, etc.)
}

// Parser converts a bank CSV file into BankTransactions.
type Parser interface {
	Parse(r io.Reader) ([]BankTransaction, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	return r
}

// importDir is the subdirectory for import CSVs.
const importDir = "import"

// processedDir is the subdirectory for processed CSVs.
const processedDir = "import/processed"

// Scan returns CSV files in <root>/import/.
func Scan(root string) ([]FileInfo, error) {
	dir := filepath.Join(root, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(root, fileName string) error {
	src := filepath.Join(root, importDir, fileName)
	dstDir := filepath.Join(root, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// ParseFile opens path and runs p over it.
func ParseFile(p Parser, path string) ([]BankTransaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	txns, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return txns, nil
}

// ParseFiles parses every path concurrently. Results are concatenated in the
// order of paths. The first failure cancels the rest.
func ParseFiles(ctx context.Context, p Parser, paths []string) ([]BankTransaction, error) {
	results := make([][]BankTransaction, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			txns, err := ParseFile(p, path)
			if err != nil {
				return err
			}
			results[i] = txns
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []BankTransaction
	for _, txns := range results {
		all = append(all, txns...)
	}
	return all, nil
}

// ToFeed converts a parsed row into a feed transaction for externalAccountID.
// Bank exports carry no merchant column, so the merchant is left for the
// linker to derive.
func ToFeed(bt BankTransaction, externalAccountID string) linking.FeedTransaction {
	return linking.FeedTransaction{
		ExternalAccountID: externalAccountID,
		Amount:            bt.Amount,
		Description:       bt.Description,
		Date:              bt.Date,
	}
}

// ToFeeds converts a batch with ToFeed.
func ToFeeds(bts []BankTransaction, externalAccountID string) []linking.FeedTransaction {
	feed := make([]linking.FeedTransaction, len(bts))
	for i, bt := range bts {
		feed[i] = ToFeed(bt, externalAccountID)
	}
	return feed
}
