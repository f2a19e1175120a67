package render

import (
	log "github.com/sirupsen/logrus"
)

// LabelCache keeps rendered text images by string. A failed render logs and
// returns Fallback, and is retried on the next Get.
type LabelCache[T any] struct {
	// Limit is how many labels are kept before the cache is flushed.
	Limit    int
	New      func(s string) (T, error)
	Drop     func(T)
	Fallback T

	labels map[string]T
}

func (c *LabelCache[T]) Get(s string) T {
	if img, ok := c.labels[s]; ok {
		return img
	}
	if c.labels == nil {
		c.labels = make(map[string]T)
	}
	if c.Limit > 0 && len(c.labels) >= c.Limit {
		for k, img := range c.labels {
			if c.Drop != nil {
				c.Drop(img)
			}
			delete(c.labels, k)
		}
	}
	img, err := c.New(s)
	if err != nil {
		log.WithField("label", s).Warnf("cannot render label: %v", err)
		return c.Fallback
	}
	c.labels[s] = img
	return img
}

func (c *LabelCache[T]) Len() int {
	return len(c.labels)
}
