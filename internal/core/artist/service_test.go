package artist_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dublab/studio/internal/core/artist"
	"github.com/dublab/studio/internal/platform/apperr"
	"github.com/dublab/studio/pkg/imageurl"
	"github.com/dublab/studio/pkg/pointer"
)

type memoryRepository struct {
	rows     map[int64]*artist.Artist
	credited map[int64]bool
	nextID   int64
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{rows: map[int64]*artist.Artist{}, credited: map[int64]bool{}}
}

func (m *memoryRepository) ListArtists(_ context.Context, f artist.Filter, limit, offset int) ([]*artist.Artist, int, error) {
	var matched []*artist.Artist
	for id := int64(1); id <= m.nextID; id++ {
		a, ok := m.rows[id]
		if !ok {
			continue
		}
		if f.Query == "" || strings.Contains(strings.ToLower(a.FullName()), strings.ToLower(f.Query)) {
			copied := *a
			matched = append(matched, &copied)
		}
	}
	total := len(matched)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (m *memoryRepository) GetArtist(_ context.Context, id int64) (*artist.Artist, error) {
	a, ok := m.rows[id]
	if !ok {
		return nil, apperr.NotFound("Artist")
	}
	copied := *a
	return &copied, nil
}

func (m *memoryRepository) CreateArtist(_ context.Context, a *artist.Artist) error {
	m.nextID++
	a.ID = m.nextID
	copied := *a
	m.rows[a.ID] = &copied
	return nil
}

func (m *memoryRepository) UpdateArtist(_ context.Context, a *artist.Artist) error {
	if _, ok := m.rows[a.ID]; !ok {
		return apperr.NotFound("Artist")
	}
	copied := *a
	m.rows[a.ID] = &copied
	return nil
}

func (m *memoryRepository) DeleteArtist(_ context.Context, id int64) error {
	if _, ok := m.rows[id]; !ok {
		return apperr.NotFound("Artist")
	}
	if m.credited[id] {
		return apperr.Conflict("credited")
	}
	delete(m.rows, id)
	return nil
}

func newService(repo artist.Repository) *artist.Service {
	return artist.NewService(repo, nil, imageurl.New("res.cloudinary.com", "dublab"), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_CreateArtist(t *testing.T) {
	ctx := context.Background()
	service := newService(newMemoryRepository())

	created, err := service.CreateArtist(ctx, artist.Input{
		FirstName:     "  Kaan ",
		LastName:      "Yılmaz",
		Bio:           pointer.To("   "),
		ImagePublicID: pointer.To("artists/kaan"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Kaan", created.FirstName)
	assert.Nil(t, created.Bio, "blank bio is stored as null")
	assert.Equal(t, "https://res.cloudinary.com/dublab/image/upload/w_256,h_256,c_fill,g_face,q_auto,f_auto/artists/kaan", created.ImageURL)

	_, err = service.CreateArtist(ctx, artist.Input{FirstName: " "})
	assert.Equal(t, http.StatusBadRequest, apperr.StatusOf(err))
}

func TestService_ListAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepository()
	service := newService(repo)

	for _, name := range []string{"Ayşe", "Burak", "Ayla"} {
		_, err := service.CreateArtist(ctx, artist.Input{FirstName: name})
		require.NoError(t, err)
	}

	found, total, err := service.ListArtists(ctx, artist.Filter{Query: "ay"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "/images/default-avatar.png", found[0].ImageURL)

	repo.credited[2] = true
	assert.Equal(t, http.StatusConflict, apperr.StatusOf(service.DeleteArtist(ctx, 2)))
	assert.NoError(t, service.DeleteArtist(ctx, 1))
	assert.Equal(t, http.StatusNotFound, apperr.StatusOf(service.DeleteArtist(ctx, 1)))
}
