package reconcile

import (
	"context"
	"testing"
	"time"

	"github.com/DriveFleet/DriveFleet/internal/booking"
	"github.com/DriveFleet/DriveFleet/internal/maintenance"
	"github.com/DriveFleet/DriveFleet/internal/vehicle"
	"github.com/stretchr/testify/require"
)

// memStore 内存版 Store，Apply 直接改自身数据，模拟事务写回。
type memStore struct {
	bookings []booking.Booking
	services []maintenance.Record
	vehicles []vehicle.Vehicle
	applied  []Changes
}

func (m *memStore) ListOpenBookings(ctx context.Context) ([]booking.Booking, error) {
	var open []booking.Booking
	for _, b := range m.bookings {
		if !b.Status.Terminal() {
			open = append(open, b)
		}
	}
	return open, nil
}

func (m *memStore) ListOpenServices(ctx context.Context) ([]maintenance.Record, error) {
	var open []maintenance.Record
	for _, rec := range m.services {
		if !rec.Status.Terminal() {
			open = append(open, rec)
		}
	}
	return open, nil
}

func (m *memStore) ListVehicles(ctx context.Context) ([]vehicle.Vehicle, error) {
	out := make([]vehicle.Vehicle, len(m.vehicles))
	copy(out, m.vehicles)
	return out, nil
}

func (m *memStore) Apply(ctx context.Context, ch Changes) error {
	m.applied = append(m.applied, ch)
	for _, b := range ch.Bookings {
		for i := range m.bookings {
			if m.bookings[i].ID == b.ID {
				m.bookings[i] = b
			}
		}
	}
	for _, rec := range ch.Services {
		for i := range m.services {
			if m.services[i].ID == rec.ID {
				m.services[i] = rec
			}
		}
	}
	for _, v := range ch.Vehicles {
		for i := range m.vehicles {
			if m.vehicles[i].ID == v.ID {
				m.vehicles[i] = v
			}
		}
	}
	return nil
}

func ts(t *testing.T, s string) time.Time {
	t.Helper()
	tm, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return tm
}

func fixtureStore(t *testing.T) *memStore {
	return &memStore{
		bookings: []booking.Booking{
			{
				ID: "b1", VehicleID: "v1", Status: booking.StatusReserved,
				Start: ts(t, "2026-01-10T00:00:00Z"), End: ts(t, "2026-01-12T00:00:00Z"),
			},
		},
		services: []maintenance.Record{
			{
				ID: "m1", VehicleID: "v2", Status: maintenance.StatusReserved,
				Start: ts(t, "2026-01-10T00:00:00Z"), End: ts(t, "2026-01-15T00:00:00Z"),
			},
		},
		vehicles: []vehicle.Vehicle{
			{ID: "v1", Status: vehicle.StatusAvailable},
			{ID: "v2", Status: vehicle.StatusAvailable},
			{ID: "v3", Status: vehicle.StatusOutOfOrder},
		},
	}
}

func TestReconcileActivates(t *testing.T) {
	store := fixtureStore(t)
	sw := NewSweeper(store, nil, testLogger())

	// now 落在两个区间内：订单和保养都应转 ACTIVE，车辆相应投影
	require.NoError(t, sw.Reconcile(context.Background(), ts(t, "2026-01-11T00:00:00Z")))

	require.Equal(t, booking.StatusActive, store.bookings[0].Status)
	require.Equal(t, maintenance.StatusActive, store.services[0].Status)
	require.Equal(t, vehicle.StatusRented, store.vehicles[0].Status)
	require.Equal(t, vehicle.StatusInService, store.vehicles[1].Status)
	require.Equal(t, vehicle.StatusOutOfOrder, store.vehicles[2].Status, "人工停用不受对账影响")
}

func TestReconcileCompletes(t *testing.T) {
	store := fixtureStore(t)
	sw := NewSweeper(store, nil, testLogger())

	// now 在所有区间之后：全部完结，车辆回到 AVAILABLE
	require.NoError(t, sw.Reconcile(context.Background(), ts(t, "2026-01-16T00:00:00Z")))

	require.Equal(t, booking.StatusCompleted, store.bookings[0].Status)
	require.Equal(t, maintenance.StatusCompleted, store.services[0].Status)
	require.Equal(t, vehicle.StatusAvailable, store.vehicles[0].Status)
	require.Equal(t, vehicle.StatusAvailable, store.vehicles[1].Status)
	require.Equal(t, vehicle.StatusOutOfOrder, store.vehicles[2].Status)
}

func TestReconcileIdempotent(t *testing.T) {
	store := fixtureStore(t)
	sw := NewSweeper(store, nil, testLogger())
	now := ts(t, "2026-01-11T00:00:00Z")

	require.NoError(t, sw.Reconcile(context.Background(), now))
	require.Len(t, store.applied, 1)

	// 同一 now 再跑一遍：没有任何新变更，不应产生第二次写回
	require.NoError(t, sw.Reconcile(context.Background(), now))
	require.Len(t, store.applied, 1)
}

func TestReconcileCanceledStaysCanceled(t *testing.T) {
	store := fixtureStore(t)
	store.bookings[0].Status = booking.StatusCanceled
	sw := NewSweeper(store, nil, testLogger())

	require.NoError(t, sw.Reconcile(context.Background(), ts(t, "2026-01-11T00:00:00Z")))

	require.Equal(t, booking.StatusCanceled, store.bookings[0].Status)
	// 取消的订单不占车，v1 保持 AVAILABLE
	require.Equal(t, vehicle.StatusAvailable, store.vehicles[0].Status)
}

func TestReconcileEndpointInclusive(t *testing.T) {
	store := fixtureStore(t)
	sw := NewSweeper(store, nil, testLogger())

	// now 恰好是订单的 end：闭区间语义下仍算租期内
	require.NoError(t, sw.Reconcile(context.Background(), ts(t, "2026-01-12T00:00:00Z")))
	require.Equal(t, booking.StatusActive, store.bookings[0].Status)
	require.Equal(t, vehicle.StatusRented, store.vehicles[0].Status)
}
