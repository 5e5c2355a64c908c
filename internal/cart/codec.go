package cart

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// slotRecord is the persisted layout: {"name": string, "price": string|number, "quantity": int}.
type slotRecord struct {
	Name     string          `json:"name"`
	Price    json.RawMessage `json:"price"`
	Quantity json.RawMessage `json:"quantity"`
}

type encodedRecord struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

// Encode serializes the ordered cart for the persisted slot.
func Encode(items []LineItem) (string, error) {
	records := make([]encodedRecord, 0, len(items))
	for _, item := range items {
		records = append(records, encodedRecord{
			Name:     item.Name,
			Price:    item.UnitPrice.String(),
			Quantity: item.Quantity,
		})
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(b), nil
}

// Decode parses a persisted slot. Any structural problem rejects the whole payload:
// callers treat the error as "start with an empty cart".
func Decode(payload string) ([]LineItem, error) {
	trimmed := bytes.TrimSpace([]byte(payload))
	if len(trimmed) == 0 {
		return nil, nil
	}

	var records []slotRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}

	items := make([]LineItem, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for i, rec := range records {
		name, err := normalizeName(rec.Name)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("record %d: duplicate item %q", i, name)
		}
		seen[name] = struct{}{}

		priceText, err := rawPriceText(rec.Price)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		price, err := ParsePrice(priceText)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		qty, err := strconv.Atoi(string(bytes.TrimSpace(rec.Quantity)))
		if err != nil || qty < 1 {
			return nil, fmt.Errorf("record %d: quantity %s is not a positive integer", i, string(rec.Quantity))
		}

		items = append(items, LineItem{Name: name, UnitPrice: price, Quantity: qty})
	}
	return items, nil
}

func rawPriceText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", fmt.Errorf("price missing")
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("price: %w", err)
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("price: %w", err)
	}
	return n.String(), nil
}
