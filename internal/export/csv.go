// Package export writes transactions as CSV and reads them back.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pocketledger/pocketledger/internal/model"
)

// Header is the CSV header for a transaction export.
const Header = "id,date,account_id,amount,description,merchant,category,ai_subcategory,ai_confidence,pending,recurring,merchant_icon,notes,location"

const (
	numFields   = 14
	dateFormat  = time.RFC3339Nano
	colID       = 0
	colDate     = 1
	colAcctID   = 2
	colAmount   = 3
	colDesc     = 4
	colMerchant = 5
	colCategory = 6
	colSubcat   = 7
	colConf     = 8
	colPending  = 9
	colRecur    = 10
	colIcon     = 11
	colNotes    = 12
	colLocation = 13
)

// ReadTransactions reads all transactions from an export.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading export CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		t, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, t)
	}
	return txns, nil
}

// WriteTransactions writes txns with a header row.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, t := range txns {
		if err := cw.Write(MarshalTransaction(t)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes txns to path, replacing any existing file.
func WriteFile(path string, txns []model.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export: %w", err)
	}
	if err := WriteTransactions(f, txns); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = t.ID
	row[colDate] = t.Date.Format(dateFormat)
	row[colAcctID] = t.AccountID
	row[colAmount] = t.Amount.StringFixed(2)
	row[colDesc] = t.Description
	row[colMerchant] = t.Merchant
	row[colCategory] = t.Category
	row[colSubcat] = t.AISubcategory
	if t.AIConfidence.Valid {
		row[colConf] = t.AIConfidence.Decimal.String()
	}
	row[colPending] = strconv.FormatBool(t.Pending)
	row[colRecur] = strconv.FormatBool(t.Recurring)
	row[colIcon] = t.MerchantIcon
	row[colNotes] = t.Notes
	row[colLocation] = t.Location
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	var confidence decimal.NullDecimal
	if record[colConf] != "" {
		d, err := decimal.NewFromString(record[colConf])
		if err != nil {
			return model.Transaction{}, fmt.Errorf("parsing ai_confidence %q: %w", record[colConf], err)
		}
		confidence = decimal.NewNullDecimal(d)
	}

	pending, err := strconv.ParseBool(record[colPending])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing pending %q: %w", record[colPending], err)
	}
	recurring, err := strconv.ParseBool(record[colRecur])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing recurring %q: %w", record[colRecur], err)
	}

	return model.Transaction{
		ID:            record[colID],
		AccountID:     record[colAcctID],
		Amount:        amount,
		Description:   record[colDesc],
		Merchant:      record[colMerchant],
		Category:      record[colCategory],
		AISubcategory: record[colSubcat],
		AIConfidence:  confidence,
		Date:          date,
		Pending:       pending,
		MerchantIcon:  record[colIcon],
		Notes:         record[colNotes],
		Recurring:     recurring,
		Location:      record[colLocation],
	}, nil
}
