package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medibook/medibook-booking-gateway/internal/core/domain"
)

func TestDoctorList(t *testing.T) {
	ctx := context.Background()

	t.Run("Caches The Backend List", func(t *testing.T) {
		calls := 0
		backend := &mockBackend{
			ListDoctorsFn: func(context.Context) ([]domain.Doctor, error) {
				calls++
				return []domain.Doctor{{ID: 1, FirstName: "Laura", LastName: "Pérez"}}, nil
			},
		}
		cache := newMockCache()
		svc := NewDoctorService(backend, cache, noopLogger{})

		for i := 0; i < 3; i++ {
			doctors, err := svc.List(ctx)
			require.NoError(t, err)
			require.Len(t, doctors, 1)
		}

		assert.Equal(t, 1, calls, "repeat reads should come from the cache")
	})

	t.Run("Nil Cache Means Every Read Hits The Backend", func(t *testing.T) {
		calls := 0
		backend := &mockBackend{
			ListDoctorsFn: func(context.Context) ([]domain.Doctor, error) {
				calls++
				return nil, nil
			},
		}
		svc := NewDoctorService(backend, nil, noopLogger{})

		_, _ = svc.List(ctx)
		_, _ = svc.List(ctx)

		assert.Equal(t, 2, calls)
	})
}

func TestDoctorByID(t *testing.T) {
	ctx := context.Background()
	backend := &mockBackend{
		ListDoctorsFn: func(context.Context) ([]domain.Doctor, error) {
			return []domain.Doctor{{ID: 1}, {ID: 2}}, nil
		},
	}
	svc := NewDoctorService(backend, nil, noopLogger{})

	t.Run("Known Doctor", func(t *testing.T) {
		doctor, err := svc.ByID(ctx, 2)
		require.NoError(t, err)
		require.NotNil(t, doctor)
		assert.Equal(t, int64(2), doctor.ID)
	})

	t.Run("Unknown Doctor Is Nil Not An Error", func(t *testing.T) {
		doctor, err := svc.ByID(ctx, 99)
		require.NoError(t, err)
		assert.Nil(t, doctor)
	})
}
