package services

import (
	"context"
	"fmt"
	"mime"
	"strings"

	"github.com/dmitrijs2005/contactdir/internal/client/client"
	"github.com/dmitrijs2005/contactdir/internal/client/models"
	"github.com/dmitrijs2005/contactdir/internal/client/state"
	"github.com/dmitrijs2005/contactdir/internal/client/view"
	"github.com/dmitrijs2005/contactdir/internal/filex"
	"github.com/dmitrijs2005/contactdir/internal/logging"
	lru "github.com/hashicorp/golang-lru/v2"
)

// PictureService saves contact pictures to the download directory.
type PictureService interface {
	// Download fetches the picture of a contact from the current snapshot
	// and writes it to disk. cached reports whether the bytes came from
	// memory rather than the backend.
	Download(ctx context.Context, id models.ID) (path string, cached bool, err error)
}

type cachedPicture struct {
	data        []byte
	contentType string
}

type pictureService struct {
	client client.Client
	store  *state.Store
	dir    string
	log    logging.Logger

	// keyed by the cache-busted URL, so a new updatedAt is always a miss
	cache *lru.Cache[string, cachedPicture]
}

func NewPictureService(c client.Client, store *state.Store, dir string, size int, log logging.Logger) (PictureService, error) {
	cache, err := lru.New[string, cachedPicture](size)
	if err != nil {
		return nil, fmt.Errorf("picture cache: %w", err)
	}
	return &pictureService{client: c, store: store, dir: dir, log: log, cache: cache}, nil
}

func (s *pictureService) Download(ctx context.Context, id models.ID) (string, bool, error) {
	contact, ok := s.store.Contact(id)
	if !ok {
		return "", false, fmt.Errorf("contact %s is not in the current list: %w", id, client.ErrNotFound)
	}
	if !contact.HasPicture {
		return "", false, fmt.Errorf("contact %s has no picture: %w", id, client.ErrNotFound)
	}

	key := view.PictureURL(contact.ID, contact.UpdatedAt)
	pic, cached := s.cache.Get(key)
	if !cached {
		data, ct, err := s.client.Picture(ctx, contact.ID, contact.UpdatedAt)
		if err != nil {
			return "", false, err
		}
		pic = cachedPicture{data: data, contentType: ct}
		s.cache.Add(key, pic)
	}

	path, err := filex.WriteFile(s.dir, pictureFileName(contact.ID, pic.contentType), pic.data)
	if err != nil {
		return "", cached, fmt.Errorf("save picture: %w", err)
	}
	s.log.Debug(ctx, "picture saved", "id", id, "path", path, "cached", cached, "bytes", len(pic.data))
	return path, cached, nil
}

func pictureFileName(id models.ID, contentType string) string {
	ext := ".bin"
	if ct, _, err := mime.ParseMediaType(contentType); err == nil {
		switch ct {
		case "image/jpeg":
			ext = ".jpg"
		default:
			if exts, _ := mime.ExtensionsByType(ct); len(exts) > 0 {
				ext = exts[0]
			}
		}
	}
	return "contact-" + strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(id.String()) + ext
}
