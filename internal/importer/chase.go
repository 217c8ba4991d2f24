package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ChaseParser parses Chase CSV exports. Checking/savings and credit card
// exports use different columns; the header row tells them apart.
type ChaseParser struct{}

const chaseDateFormat = "01/02/2006"

// chaseLayout locates the columns of one Chase export flavor.
type chaseLayout struct {
	name      string
	firstCol  string // header of column 0, identifies the layout
	numFields int
	date      int
	desc      int
	amount    int
	txnType   int
}

var chaseLayouts = []chaseLayout{
	// Details,Posting Date,Description,Amount,Type,Balance,Check or Slip #
	{name: "checking", firstCol: "details", numFields: 7, date: 1, desc: 2, amount: 3, txnType: 4},
	// Transaction Date,Post Date,Description,Category,Type,Amount,Memo
	{name: "card", firstCol: "transaction date", numFields: 7, date: 0, desc: 2, amount: 5, txnType: 4},
}

// Format returns the parser name.
func (p *ChaseParser) Format() string { return "chase" }

// Parse reads a Chase CSV and returns BankTransactions in file order.
func (p *ChaseParser) Parse(r io.Reader) ([]BankTransaction, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading chase CSV: %w", err)
	}
	layout, err := detectChaseLayout(header)
	if err != nil {
		return nil, err
	}
	cr.FieldsPerRecord = layout.numFields

	var txns []BankTransaction
	for row := 2; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading chase CSV: %w", err)
		}
		txn, err := layout.parseRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

func detectChaseLayout(header []string) (chaseLayout, error) {
	if len(header) > 0 {
		first := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header[0], "\ufeff")))
		for _, l := range chaseLayouts {
			if first == l.firstCol && len(header) == l.numFields {
				return l, nil
			}
		}
	}
	return chaseLayout{}, fmt.Errorf("unrecognized chase CSV header %q", strings.Join(header, ","))
}

func (l chaseLayout) parseRow(rec []string) (BankTransaction, error) {
	date, err := time.Parse(chaseDateFormat, strings.TrimSpace(rec[l.date]))
	if err != nil {
		return BankTransaction{}, fmt.Errorf("parsing date %q: %w", rec[l.date], err)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(rec[l.amount]))
	if err != nil {
		return BankTransaction{}, fmt.Errorf("parsing amount %q: %w", rec[l.amount], err)
	}

	desc := strings.TrimSpace(rec[l.desc])
	return BankTransaction{
		Date:        date,
		Description: desc,
		Amount:      amount,
		Reference:   makeChaseRef(date, desc),
		Type:        rec[l.txnType],
	}, nil
}

// makeChaseRef builds a reference like chase_20250103_STARBUCKSS.
func makeChaseRef(date time.Time, desc string) string {
	var b strings.Builder
	for _, r := range desc {
		if b.Len() == 10 {
			break
		}
		if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return fmt.Sprintf("chase_%s_%s", date.Format("20060102"), b.String())
}
