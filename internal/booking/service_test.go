package booking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drivenow/car-rental-backend/internal/booking"
	"github.com/drivenow/car-rental-backend/internal/car"
)

// memRepo is an in-memory booking.Repository. Like the real repository it
// serializes the check-then-insert, here with a plain mutex.
type memRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []*booking.Booking
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1}
}

func (r *memRepo) Create(ctx context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.rows {
		if existing.CarID == b.CarID &&
			booking.Overlaps(b.StartDate, b.EndDate, existing.StartDate, existing.EndDate) {
			return booking.ErrDateConflict
		}
	}

	b.ID = r.nextID
	r.nextID++
	b.CreatedAt = time.Now().UTC()

	stored := *b
	r.rows = append(r.rows, &stored)
	return nil
}

func (r *memRepo) FindOverlapping(ctx context.Context, carID int64, start, end time.Time) ([]*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*booking.Booking
	for _, b := range r.rows {
		if b.CarID == carID && booking.Overlaps(start, end, b.StartDate, b.EndDate) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memRepo) GetByID(ctx context.Context, id int64) (*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.rows {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, booking.ErrNotFound
}

func (r *memRepo) List(ctx context.Context, filter booking.Filter) ([]*booking.Booking, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*booking.Booking
	for i := len(r.rows) - 1; i >= 0; i-- {
		if filter.CarID == 0 || r.rows[i].CarID == filter.CarID {
			out = append(out, r.rows[i])
		}
	}
	return out, len(out), nil
}

func (r *memRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// fakeCarService serves a fixed catalog.
type fakeCarService struct {
	cars map[int64]*car.Car
}

func (f *fakeCarService) GetByID(ctx context.Context, id int64) (*car.Car, error) {
	if c, ok := f.cars[id]; ok {
		return c, nil
	}
	return nil, car.ErrNotFound
}

func (f *fakeCarService) Create(ctx context.Context, req car.CreateRequest) (*car.Car, error) {
	panic("not used")
}
func (f *fakeCarService) ListAvailable(ctx context.Context) ([]*car.Car, error) { return nil, nil }
func (f *fakeCarService) List(ctx context.Context) ([]*car.Car, error)          { return nil, nil }
func (f *fakeCarService) Update(ctx context.Context, id int64, req car.UpdateRequest) (*car.Car, error) {
	panic("not used")
}
func (f *fakeCarService) Delete(ctx context.Context, id int64) error { return nil }
func (f *fakeCarService) SetImage(ctx context.Context, id int64, imageURL string) (*car.Car, error) {
	panic("not used")
}

const (
	carAvailable   = int64(1)
	carOffline     = int64(2)
	carOtherAvail  = int64(3)
	carNonExistent = int64(99)
)

func newTestService() (booking.Service, *memRepo) {
	repo := newMemRepo()
	cars := &fakeCarService{cars: map[int64]*car.Car{
		carAvailable:  {ID: carAvailable, Brand: "Toyota", Model: "Camry", Category: "Sedan", PricePerDay: 45, Available: true},
		carOffline:    {ID: carOffline, Brand: "Ford", Model: "Mustang", Category: "Sports", PricePerDay: 75, Available: false},
		carOtherAvail: {ID: carOtherAvail, Brand: "Audi", Model: "A4", Category: "Luxury", PricePerDay: 90, Available: true},
	}}
	return booking.NewService(repo, cars), repo
}

func request(carID int64, start, end time.Time) booking.CreateRequest {
	return booking.CreateRequest{
		CarID:        carID,
		StartDate:    start,
		EndDate:      end,
		CustomerName: "Jamie Doe",
		Email:        "jamie@example.com",
	}
}

func TestCreateAdmitsAndAssignsIdentity(t *testing.T) {
	svc, _ := newTestService()

	b, err := svc.Create(context.Background(), request(carAvailable, day(2024, 6, 10), day(2024, 6, 15)))
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.ID)
	assert.False(t, b.CreatedAt.IsZero())
	assert.Equal(t, "Toyota", b.CarBrand)
	assert.Equal(t, "Camry", b.CarModel)
}

func TestCreateOverlapTable(t *testing.T) {
	// Each case runs against a fresh ledger holding [2024-06-10, 2024-06-15].
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		wantErr error
	}{
		{"shared boundary day", day(2024, 6, 15), day(2024, 6, 20), booking.ErrDateConflict},
		{"starts day after end", day(2024, 6, 16), day(2024, 6, 20), nil},
		{"ends day before start", day(2024, 6, 5), day(2024, 6, 9), nil},
		{"fully contained", day(2024, 6, 12), day(2024, 6, 13), booking.ErrDateConflict},
		{"fully containing", day(2024, 6, 1), day(2024, 6, 30), booking.ErrDateConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()
			_, err := svc.Create(context.Background(), request(carAvailable, day(2024, 6, 10), day(2024, 6, 15)))
			require.NoError(t, err)

			_, err = svc.Create(context.Background(), request(carAvailable, tt.start, tt.end))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateIdempotentRejection(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Create(context.Background(), request(carAvailable, day(2024, 6, 10), day(2024, 6, 15)))
	require.NoError(t, err)

	// The identical conflicting request always yields conflict, never any
	// partial state change.
	for i := 0; i < 5; i++ {
		_, err := svc.Create(context.Background(), request(carAvailable, day(2024, 6, 12), day(2024, 6, 13)))
		assert.ErrorIs(t, err, booking.ErrDateConflict)
	}
	assert.Equal(t, 1, repo.count())
}

func TestCreateInvalidRange(t *testing.T) {
	svc, repo := newTestService()

	// End before start
	_, err := svc.Create(context.Background(), request(carAvailable, day(2024, 6, 15), day(2024, 6, 14)))
	assert.ErrorIs(t, err, booking.ErrInvalidRange)
	assert.Equal(t, 0, repo.count())

	// Single-day rental is a legal closed interval
	_, err = svc.Create(context.Background(), request(carAvailable, day(2024, 6, 15), day(2024, 6, 15)))
	assert.NoError(t, err)
}

func TestCreateInvalidCustomerFields(t *testing.T) {
	svc, repo := newTestService()

	tests := []struct {
		name  string
		cname string
		email string
	}{
		{"empty name", "", "jamie@example.com"},
		{"blank name", "   ", "jamie@example.com"},
		{"empty email", "Jamie Doe", ""},
		{"email without at sign", "Jamie Doe", "jamie.example.com"},
		{"email without domain", "Jamie Doe", "jamie@"},
		{"email without local part", "Jamie Doe", "@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request(carAvailable, day(2024, 6, 10), day(2024, 6, 15))
			req.CustomerName = tt.cname
			req.Email = tt.email

			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, booking.ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, repo.count())
}

func TestCreateUnavailableCar(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Create(context.Background(), request(carOffline, day(2024, 6, 10), day(2024, 6, 15)))
	assert.ErrorIs(t, err, booking.ErrCarUnavailable)
	assert.Equal(t, 0, repo.count())
}

func TestCreateUnknownCar(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Create(context.Background(), request(carNonExistent, day(2024, 6, 10), day(2024, 6, 15)))
	assert.ErrorIs(t, err, booking.ErrCarNotFound)
	assert.Equal(t, 0, repo.count())
}

func TestCreateConcurrentOverlapOneWinner(t *testing.T) {
	svc, repo := newTestService()

	const racers = 8
	var wg sync.WaitGroup
	errs := make([]error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), request(carAvailable, day(2024, 6, 10), day(2024, 6, 15)))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, booking.ErrDateConflict)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, repo.count())
}

func TestCreateConcurrentDisjointBothAdmitted(t *testing.T) {
	svc, repo := newTestService()

	var wg sync.WaitGroup
	var err1, err2 error

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err1 = svc.Create(context.Background(), request(carAvailable, day(2024, 6, 1), day(2024, 6, 5)))
	}()
	go func() {
		defer wg.Done()
		_, err2 = svc.Create(context.Background(), request(carAvailable, day(2024, 6, 6), day(2024, 6, 10)))
	}()
	wg.Wait()

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, 2, repo.count())
}

func TestCreateDifferentCarsIndependent(t *testing.T) {
	svc, repo := newTestService()

	_, err := svc.Create(context.Background(), request(carAvailable, day(2024, 6, 10), day(2024, 6, 15)))
	require.NoError(t, err)

	// Same dates on a different car are not a conflict.
	_, err = svc.Create(context.Background(), request(carOtherAvail, day(2024, 6, 10), day(2024, 6, 15)))
	assert.NoError(t, err)
	assert.Equal(t, 2, repo.count())
}

func TestNoDoubleBookingInvariant(t *testing.T) {
	svc, repo := newTestService()

	// Throw a pile of half-random ranges at one car, then verify the ledger.
	for offset := 0; offset < 20; offset++ {
		start := day(2024, 6, 1).AddDate(0, 0, (offset*3)%17)
		end := start.AddDate(0, 0, offset%5)
		_, _ = svc.Create(context.Background(), request(carAvailable, start, end))
	}

	committed, _, err := repo.List(context.Background(), booking.Filter{CarID: carAvailable})
	require.NoError(t, err)
	require.NotEmpty(t, committed)

	for i := 0; i < len(committed); i++ {
		for j := i + 1; j < len(committed); j++ {
			a, b := committed[i], committed[j]
			assert.Falsef(t, booking.Overlaps(a.StartDate, a.EndDate, b.StartDate, b.EndDate),
				"bookings %d and %d overlap: [%s,%s] vs [%s,%s]",
				a.ID, b.ID,
				a.StartDate.Format(booking.DateLayout), a.EndDate.Format(booking.DateLayout),
				b.StartDate.Format(booking.DateLayout), b.EndDate.Format(booking.DateLayout))
		}
	}
}

func TestFindOverlapping(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), request(carAvailable, day(2024, 6, 10), day(2024, 6, 15)))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), request(carAvailable, day(2024, 6, 20), day(2024, 6, 25)))
	require.NoError(t, err)

	got, err := svc.FindOverlapping(context.Background(), carAvailable, day(2024, 6, 14), day(2024, 6, 16))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, day(2024, 6, 10), got[0].StartDate)

	// Unknown car surfaces not-found rather than an empty list.
	_, err = svc.FindOverlapping(context.Background(), carNonExistent, day(2024, 6, 1), day(2024, 6, 30))
	assert.ErrorIs(t, err, booking.ErrCarNotFound)
}
