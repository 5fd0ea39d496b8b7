package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/theirongolddev/finburn/internal/model"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// TxRecord is the file form of a transaction, shared by YAML export and
// import.
type TxRecord struct {
	Date        string `yaml:"date"`
	Type        string `yaml:"type"`
	Category    string `yaml:"category"`
	Amount      string `yaml:"amount"`
	Description string `yaml:"description,omitempty"`
}

func recordFrom(t model.Transaction) TxRecord {
	return TxRecord{
		Date:        t.Date.Local().Format(dateLayout),
		Type:        string(t.Type),
		Category:    string(t.Category),
		Amount:      t.Amount.String(),
		Description: t.Description,
	}
}

// Transaction converts and validates the record.
func (r TxRecord) Transaction() (model.Transaction, error) {
	typ, err := model.ParseTransactionType(r.Type)
	if err != nil {
		return model.Transaction{}, err
	}
	cat, err := model.ParseCategory(r.Category)
	if err != nil {
		return model.Transaction{}, err
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(r.Amount))
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: amount %q: %v", model.ErrInvalidInput, r.Amount, err)
	}
	date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(r.Date), time.Local)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", model.ErrInvalidInput, r.Date)
	}

	t := model.Transaction{
		Amount:      amount,
		Type:        typ,
		Category:    cat,
		Description: r.Description,
		Date:        date,
	}
	return t, t.Validate()
}

type txFile struct {
	Transactions []TxRecord `yaml:"transactions"`
}

// ReadTransactions parses a YAML transaction file. It accepts either a
// top-level list or a document with a transactions key, so an exported
// report can be imported back. Every record is validated; the first
// bad record fails the whole file.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading transactions: %w", err)
	}

	var records []TxRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		var doc txFile
		if docErr := yaml.Unmarshal(data, &doc); docErr != nil {
			return nil, fmt.Errorf("%w: parsing YAML: %v", model.ErrInvalidInput, errors.Join(err, docErr))
		}
		records = doc.Transactions
	}

	out := make([]model.Transaction, 0, len(records))
	for i, rec := range records {
		t, err := rec.Transaction()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// ReadTransactionsFile opens path and calls ReadTransactions.
func ReadTransactionsFile(path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return ReadTransactions(f)
}
