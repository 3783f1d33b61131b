package api

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/hoffis/storecheck/internal/reconcile"
)

// catalogEntry matches the object form of a listing element. Some
// deployments label products "name", older ones "title".
type catalogEntry struct {
	ID    json.RawMessage `json:"id"`
	Name  string          `json:"name"`
	Title string          `json:"title"`
	Price json.RawMessage `json:"price"`
}

// parseCatalog turns a listing payload into product references, accepting a
// bare id array, an array of id-bearing objects, or a {"products": ...}
// wrapper around either.
func parseCatalog(body []byte) ([]reconcile.ProductRef, error) {
	var wrapper struct {
		Products json.RawMessage `json:"products"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && len(wrapper.Products) > 0 {
		body = wrapper.Products
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedCatalog, err)
	}

	products := make([]reconcile.ProductRef, 0, len(items))
	for i, item := range items {
		ref, err := parseCatalogItem(item)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %s", ErrMalformedCatalog, i, err)
		}
		products = append(products, ref)
	}

	return products, nil
}

func parseCatalogItem(item json.RawMessage) (reconcile.ProductRef, error) {
	// Bare id, as number or string.
	if id, ok := parseID(item); ok {
		return reconcile.ProductRef{ID: id}, nil
	}

	var entry catalogEntry
	if err := json.Unmarshal(item, &entry); err != nil {
		return reconcile.ProductRef{}, fmt.Errorf("neither id nor object: %s", item)
	}
	id, ok := parseID(entry.ID)
	if !ok {
		return reconcile.ProductRef{}, fmt.Errorf("object without id: %s", item)
	}

	name := entry.Name
	if name == "" {
		name = entry.Title
	}
	return reconcile.ProductRef{ID: id, Name: name}, nil
}

// parseCatalogPrices extracts the advertised price text per product id from
// a listing payload. Shapes without object entries or price fields simply
// contribute nothing.
func parseCatalogPrices(body []byte) map[string]string {
	var wrapper struct {
		Products json.RawMessage `json:"products"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && len(wrapper.Products) > 0 {
		body = wrapper.Products
	}

	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return nil
	}

	prices := make(map[string]string)
	for _, item := range items {
		var entry catalogEntry
		if err := json.Unmarshal(item, &entry); err != nil {
			continue
		}
		id, ok := parseID(entry.ID)
		if !ok || len(entry.Price) == 0 {
			continue
		}

		var asString string
		if err := json.Unmarshal(entry.Price, &asString); err == nil {
			prices[id] = asString
			continue
		}
		var asNumber float64
		if err := json.Unmarshal(entry.Price, &asNumber); err == nil {
			prices[id] = strconv.FormatFloat(asNumber, 'f', -1, 64)
		}
	}

	return prices
}

// parseID accepts a JSON number or string as a product id and returns its
// canonical string form.
func parseID(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if asString == "" {
			return "", false
		}
		return asString, true
	}

	var asNumber float64
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		if asNumber == float64(int64(asNumber)) {
			return strconv.FormatInt(int64(asNumber), 10), true
		}
		return strconv.FormatFloat(asNumber, 'f', -1, 64), true
	}

	return "", false
}
