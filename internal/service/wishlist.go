package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/wishwatch/wishwatch/internal/codec"
	"github.com/wishwatch/wishwatch/internal/metrics"
	"github.com/wishwatch/wishwatch/internal/models"
	"github.com/wishwatch/wishwatch/internal/repository"
)

// Wishlist is the business logic layer around the in-memory item list and
// its backing store. Every mutation is a read-modify-write over the full
// list followed by a full-list write-through save, so all operations are
// serialized behind one mutex: two unserialized mutations would race and one
// save could silently overwrite the other's effect.
type Wishlist struct {
	store  repository.WishlistStore
	logger *logrus.Logger

	mu    sync.Mutex
	items []models.WishItem
}

// NewWishlist creates the wishlist service. Call Load once before use.
func NewWishlist(store repository.WishlistStore, logger *logrus.Logger) *Wishlist {
	return &Wishlist{store: store, logger: logger}
}

// Load hydrates the in-memory list from the store. Entries that fail to
// decode are skipped and logged rather than aborting the whole load: one
// corrupt record must not make the rest of the wishlist vanish. Items that
// do load are trusted as previously validated; no URL check is re-run.
//
// Returns an error (wrapping repository.ErrStoreUnavailable) only when the
// store itself cannot be read; the caller may degrade to an empty list.
func (w *Wishlist) Load(ctx context.Context) error {
	records, err := w.store.Load(ctx)
	if err != nil {
		metrics.StoreFailures.Inc()
		return fmt.Errorf("failed to load wishlist: %w", err)
	}

	items := make([]models.WishItem, 0, len(records))
	var corrupt *multierror.Error
	for i, record := range records {
		item, err := codec.Decode(record)
		if err != nil {
			corrupt = multierror.Append(corrupt, fmt.Errorf("entry %d: %w", i, err))
			metrics.MalformedRecords.Inc()
			continue
		}
		items = append(items, item)
	}

	if err := corrupt.ErrorOrNil(); err != nil {
		w.logger.WithField("skipped", len(corrupt.Errors)).
			Warnf("Skipped corrupt wishlist entries: %v", err)
	}

	w.mu.Lock()
	w.items = items
	w.mu.Unlock()

	w.logger.Infof("Loaded %d wishlist items", len(items))
	return nil
}

// AddItem validates and appends a new item, then persists the full list.
//
// The raw URL is trimmed and must be an absolute URL (scheme and host both
// present), otherwise ErrInvalidURL. The target price text goes through the
// lenient parser: empty or unparseable input means no target, never an
// error. Duplicate URLs are allowed. The current price always starts unset.
//
// When the save fails the item stays in memory (memory-only degradation)
// and the wrapped store error is returned so the caller can warn.
func (w *Wishlist) AddItem(ctx context.Context, rawURL, rawTargetPrice string) (models.WishItem, error) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return models.WishItem{}, fmt.Errorf("%w: empty input", ErrInvalidURL)
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return models.WishItem{}, fmt.Errorf("%w: %q", ErrInvalidURL, trimmed)
	}

	item := models.NewWishItem(trimmed, time.Now(), ParsePrice(rawTargetPrice))

	w.mu.Lock()
	defer w.mu.Unlock()

	w.items = append(w.items, item)
	metrics.ItemsAdded.Inc()

	w.logger.WithFields(logrus.Fields{
		"url":        item.URL,
		"has_target": item.HasTarget(),
		"count":      len(w.items),
	}).Info("Wish item added")

	if err := w.persist(ctx); err != nil {
		return item, err
	}
	return item, nil
}

// UpdatePrice replaces the current price of the item at index with the
// leniently parsed value; empty or unparseable text clears the price. The
// item itself is replaced immutably. Persists immediately.
func (w *Wishlist) UpdatePrice(ctx context.Context, index int, rawPrice string) (models.WishItem, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if index < 0 || index >= len(w.items) {
		return models.WishItem{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	item := w.items[index].WithCurrentPrice(ParsePrice(rawPrice))
	w.items[index] = item
	metrics.PriceUpdates.Inc()

	w.logger.WithFields(logrus.Fields{
		"index":  index,
		"url":    item.URL,
		"status": item.Status(),
	}).Info("Current price updated")

	if err := w.persist(ctx); err != nil {
		return item, err
	}
	return item, nil
}

// DeleteItem removes the item at index and persists immediately.
func (w *Wishlist) DeleteItem(ctx context.Context, index int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if index < 0 || index >= len(w.items) {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}

	removed := w.items[index].URL
	w.items = append(w.items[:index], w.items[index+1:]...)
	metrics.ItemsDeleted.Inc()

	w.logger.WithFields(logrus.Fields{
		"index": index,
		"url":   removed,
		"count": len(w.items),
	}).Info("Wish item deleted")

	return w.persist(ctx)
}

// Items returns a copy of the current list in insertion order.
func (w *Wishlist) Items() []models.WishItem {
	w.mu.Lock()
	defer w.mu.Unlock()

	items := make([]models.WishItem, len(w.items))
	copy(items, w.items)
	return items
}

// persist encodes the full list and overwrites the store. Caller must hold
// the mutex.
func (w *Wishlist) persist(ctx context.Context) error {
	records := make([]string, len(w.items))
	for i, item := range w.items {
		record, err := codec.Encode(item)
		if err != nil {
			return fmt.Errorf("failed to encode item %d: %w", i, err)
		}
		records[i] = record
	}

	if err := w.store.Save(ctx, records); err != nil {
		metrics.StoreFailures.Inc()
		w.logger.Warnf("Wishlist save failed, continuing in memory: %v", err)
		return fmt.Errorf("failed to persist wishlist: %w", err)
	}
	return nil
}
