package loads_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/dto"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/loads"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/numbering"
)

const (
	testCompanyID  = "11111111-1111-4111-8111-111111111111"
	testCustomerID = "22222222-2222-4222-8222-222222222222"
	testDriverID   = "33333333-3333-4333-8333-333333333333"
	testVehicleID  = "44444444-4444-4444-8444-444444444444"
	testUserID     = "55555555-5555-4555-8555-555555555555"
)

// memLoadRepo is an in-memory LoadRepository that reproduces the conditional
// update semantics of the SQL layer: the guard condition is re-checked at
// write time and rows-affected reports whether it still held.
type memLoadRepo struct {
	loads    map[string]*entity.Load
	tracking []*entity.LoadTracking
}

func newMemLoadRepo() *memLoadRepo {
	return &memLoadRepo{loads: map[string]*entity.Load{}}
}

func (m *memLoadRepo) Create(l *entity.Load) error {
	cp := *l
	m.loads[l.ID] = &cp
	return nil
}

func (m *memLoadRepo) GetByID(companyID, id string) (*entity.Load, error) {
	l, ok := m.loads[id]
	if !ok || l.CompanyID != companyID {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (m *memLoadRepo) ListByCompany(companyID, status string, limit, offset int) ([]*entity.Load, error) {
	var out []*entity.Load
	for _, l := range m.loads {
		if l.CompanyID == companyID && (status == "" || l.Status == status) {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memLoadRepo) Update(l *entity.Load) error {
	cp := *l
	m.loads[l.ID] = &cp
	return nil
}

func (m *memLoadRepo) CountActiveByDriver(companyID, driverID, excludeLoadID string) (int, error) {
	n := 0
	for _, l := range m.loads {
		if l.CompanyID != companyID || l.ID == excludeLoadID {
			continue
		}
		if l.DriverID != nil && *l.DriverID == driverID && entity.LoadStatusActive(l.Status) {
			n++
		}
	}
	return n, nil
}

func (m *memLoadRepo) AssignDriver(companyID, loadID, driverID, vehicleID string) (int64, error) {
	l, ok := m.loads[loadID]
	if !ok || l.CompanyID != companyID || entity.LoadStatusTerminal(l.Status) {
		return 0, nil
	}
	other, _ := m.CountActiveByDriver(companyID, driverID, loadID)
	if other > 0 {
		return 0, nil
	}
	l.DriverID = &driverID
	l.VehicleID = &vehicleID
	if l.Status == entity.LoadPending {
		l.Status = entity.LoadAssigned
	}
	return 1, nil
}

func (m *memLoadRepo) UnassignDriver(companyID, loadID string) (int64, error) {
	l, ok := m.loads[loadID]
	if !ok || l.CompanyID != companyID || l.DriverID == nil || l.Status == entity.LoadInTransit {
		return 0, nil
	}
	l.DriverID = nil
	l.VehicleID = nil
	return 1, nil
}

func (m *memLoadRepo) UpdateStatus(companyID, loadID, from, to string) (int64, error) {
	l, ok := m.loads[loadID]
	if !ok || l.CompanyID != companyID || l.Status != from {
		return 0, nil
	}
	l.Status = to
	return 1, nil
}

func (m *memLoadRepo) AppendTracking(t *entity.LoadTracking) error {
	m.tracking = append(m.tracking, t)
	return nil
}

func (m *memLoadRepo) ListTracking(companyID, loadID string) ([]*entity.LoadTracking, error) {
	var out []*entity.LoadTracking
	for _, tr := range m.tracking {
		if tr.CompanyID == companyID && tr.LoadID == loadID {
			out = append(out, tr)
		}
	}
	return out, nil
}

type stubCustomerRepo struct{ customer *entity.Customer }

func (s *stubCustomerRepo) Create(c *entity.Customer) error { return nil }
func (s *stubCustomerRepo) GetByID(companyID, id string) (*entity.Customer, error) {
	if s.customer == nil || s.customer.CompanyID != companyID || s.customer.ID != id {
		return nil, nil
	}
	return s.customer, nil
}
func (s *stubCustomerRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (s *stubCustomerRepo) Update(c *entity.Customer) error   { return nil }
func (s *stubCustomerRepo) Delete(companyID, id string) error { return nil }

type stubDriverRepo struct{ driver *entity.Driver }

func (s *stubDriverRepo) Create(d *entity.Driver) error { return nil }
func (s *stubDriverRepo) GetByID(companyID, id string) (*entity.Driver, error) {
	if s.driver == nil || s.driver.CompanyID != companyID || s.driver.ID != id {
		return nil, nil
	}
	return s.driver, nil
}
func (s *stubDriverRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Driver, error) {
	return nil, nil
}
func (s *stubDriverRepo) Update(d *entity.Driver) error                  { return nil }
func (s *stubDriverRepo) SetActive(companyID, id string, ok bool) error  { return nil }
func (s *stubDriverRepo) Delete(companyID, id string) error              { return nil }

type stubVehicleRepo struct{ vehicle *entity.Vehicle }

func (s *stubVehicleRepo) Create(v *entity.Vehicle) error { return nil }
func (s *stubVehicleRepo) GetByID(companyID, id string) (*entity.Vehicle, error) {
	if s.vehicle == nil || s.vehicle.CompanyID != companyID || s.vehicle.ID != id {
		return nil, nil
	}
	return s.vehicle, nil
}
func (s *stubVehicleRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Vehicle, error) {
	return nil, nil
}
func (s *stubVehicleRepo) Update(v *entity.Vehicle) error                 { return nil }
func (s *stubVehicleRepo) UpdateStatus(companyID, id, status string) error { return nil }

type fixture struct {
	uc    *loads.LoadUseCase
	repo  *memLoadRepo
	drv   *stubDriverRepo
}

func newFixture() *fixture {
	repo := newMemLoadRepo()
	customers := &stubCustomerRepo{customer: &entity.Customer{
		ID:        testCustomerID,
		CompanyID: testCompanyID,
		Name:      "Kalahari Beverages",
		Currency:  "BWP",
	}}
	drv := &stubDriverRepo{driver: &entity.Driver{
		ID:        testDriverID,
		CompanyID: testCompanyID,
		Name:      "T. Mokoena",
		IsActive:  true,
	}}
	veh := &stubVehicleRepo{vehicle: &entity.Vehicle{
		ID:           testVehicleID,
		CompanyID:    testCompanyID,
		Registration: "B 123 ABC",
		Status:       entity.VehicleActive,
	}}
	uc := loads.NewLoadUseCase(repo, customers, drv, veh, numbering.NewGenerator(nil))
	return &fixture{uc: uc, repo: repo, drv: drv}
}

func (f *fixture) createLoad(t *testing.T) *dto.LoadResponse {
	t.Helper()
	resp, err := f.uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateLoadRequest{
		CustomerID:  testCustomerID,
		Origin:      "Gaborone",
		Destination: "Maun",
		Commodity:   "Bottled water",
		WeightKG:    decimal.NewFromInt(12000),
		Rate:        decimal.NewFromInt(18500),
	})
	require.NoError(t, err)
	return resp
}

func TestCreateLoad_GeneratesNumberAndCurrency(t *testing.T) {
	f := newFixture()
	resp := f.createLoad(t)

	assert.Equal(t, entity.LoadPending, resp.Status)
	assert.Equal(t, "BWP", resp.Currency, "currency falls back to the customer's")
	assert.Regexp(t, regexp.MustCompile(`^LD-KAL-\d{4}-\d{3}$`), resp.LoadNumber)

	trail, err := f.uc.Tracking(testCompanyID, resp.ID)
	require.NoError(t, err)
	require.Len(t, trail, 1)
	assert.Equal(t, entity.LoadPending, trail[0].Status)
}

func TestCreateLoad_KeepsSuppliedNumber(t *testing.T) {
	f := newFixture()
	resp, err := f.uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateLoadRequest{
		CustomerID:  testCustomerID,
		LoadNumber:  "LD-KAL-2608-777",
		Origin:      "Gaborone",
		Destination: "Maun",
	})
	require.NoError(t, err)
	assert.Equal(t, "LD-KAL-2608-777", resp.LoadNumber)
}

func TestCreateLoad_NegativeWeight(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateLoadRequest{
		CustomerID:  testCustomerID,
		Origin:      "Gaborone",
		Destination: "Maun",
		WeightKG:    decimal.NewFromInt(-1),
	})
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestCreateLoad_ReportsEachNegativeField(t *testing.T) {
	f := newFixture()
	_, err := f.uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateLoadRequest{
		CustomerID:  testCustomerID,
		Origin:      "Gaborone",
		Destination: "Maun",
		WeightKG:    decimal.NewFromInt(10),
		VolumeM3:    decimal.NewFromInt(-2),
		Rate:        decimal.NewFromInt(-500),
	})
	require.Error(t, err)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "must not be negative", ve.Fields["volume_m3"])
	assert.Equal(t, "must not be negative", ve.Fields["rate"])
	assert.NotContains(t, ve.Fields, "weight_kg")
}

func TestAssignLoad_PendingBecomesAssigned(t *testing.T) {
	f := newFixture()
	created := f.createLoad(t)

	resp, err := f.uc.Assign(testCompanyID, created.ID, testUserID, dto.AssignLoadRequest{
		DriverID:  testDriverID,
		VehicleID: testVehicleID,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.LoadAssigned, resp.Status)
	require.NotNil(t, resp.DriverID)
	assert.Equal(t, testDriverID, *resp.DriverID)
}

func TestAssignLoad_DriverAlreadyCommitted(t *testing.T) {
	f := newFixture()
	first := f.createLoad(t)
	second := f.createLoad(t)

	_, err := f.uc.Assign(testCompanyID, first.ID, testUserID, dto.AssignLoadRequest{
		DriverID: testDriverID, VehicleID: testVehicleID,
	})
	require.NoError(t, err)

	_, err = f.uc.Assign(testCompanyID, second.ID, testUserID, dto.AssignLoadRequest{
		DriverID: testDriverID, VehicleID: testVehicleID,
	})
	require.Error(t, err)
	assert.True(t, domain.IsGuard(err))
	assert.EqualError(t, err, "Driver is already assigned to an active load")
}

func TestAssignLoad_ReassignSameLoadIsIdempotent(t *testing.T) {
	f := newFixture()
	created := f.createLoad(t)

	_, err := f.uc.Assign(testCompanyID, created.ID, testUserID, dto.AssignLoadRequest{
		DriverID: testDriverID, VehicleID: testVehicleID,
	})
	require.NoError(t, err)

	// Same driver on the same load again: the active-elsewhere count excludes
	// this load, so the reassignment goes through without a status downgrade.
	resp, err := f.uc.Assign(testCompanyID, created.ID, testUserID, dto.AssignLoadRequest{
		DriverID: testDriverID, VehicleID: testVehicleID,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.LoadAssigned, resp.Status)
}

func TestAssignLoad_InactiveDriver(t *testing.T) {
	f := newFixture()
	created := f.createLoad(t)
	f.drv.driver.IsActive = false

	_, err := f.uc.Assign(testCompanyID, created.ID, testUserID, dto.AssignLoadRequest{
		DriverID: testDriverID, VehicleID: testVehicleID,
	})
	require.Error(t, err)
	assert.True(t, domain.IsGuard(err))
	assert.EqualError(t, err, "Driver is not active")
}

func TestUnassignLoad_InTransitRejected(t *testing.T) {
	f := newFixture()
	created := f.createLoad(t)

	_, err := f.uc.Assign(testCompanyID, created.ID, testUserID, dto.AssignLoadRequest{
		DriverID: testDriverID, VehicleID: testVehicleID,
	})
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(testCompanyID, created.ID, testUserID, dto.UpdateLoadStatusRequest{
		Status: entity.LoadInTransit,
	})
	require.NoError(t, err)

	_, err = f.uc.Unassign(testCompanyID, created.ID, testUserID)
	require.Error(t, err)
	assert.True(t, domain.IsGuard(err))
	assert.EqualError(t, err, "Cannot unassign driver from load in transit")
}

func TestUnassignLoad_NoDriver(t *testing.T) {
	f := newFixture()
	created := f.createLoad(t)

	_, err := f.uc.Unassign(testCompanyID, created.ID, testUserID)
	require.Error(t, err)
	assert.True(t, domain.IsGuard(err))
	assert.EqualError(t, err, "No driver assigned to this load")
}

func TestUpdateLoadStatus_FullLifecycle(t *testing.T) {
	f := newFixture()
	created := f.createLoad(t)

	_, err := f.uc.Assign(testCompanyID, created.ID, testUserID, dto.AssignLoadRequest{
		DriverID: testDriverID, VehicleID: testVehicleID,
	})
	require.NoError(t, err)

	resp, err := f.uc.UpdateStatus(testCompanyID, created.ID, testUserID, dto.UpdateLoadStatusRequest{
		Status: entity.LoadInTransit, Note: "Departed depot",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.LoadInTransit, resp.Status)

	resp, err = f.uc.UpdateStatus(testCompanyID, created.ID, testUserID, dto.UpdateLoadStatusRequest{
		Status: entity.LoadDelivered,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.LoadDelivered, resp.Status)

	trail, err := f.uc.Tracking(testCompanyID, created.ID)
	require.NoError(t, err)
	assert.Len(t, trail, 4, "created, assigned, in_transit, delivered")
}

func TestUpdateLoadStatus_IllegalTransition(t *testing.T) {
	f := newFixture()
	created := f.createLoad(t)

	_, err := f.uc.UpdateStatus(testCompanyID, created.ID, testUserID, dto.UpdateLoadStatusRequest{
		Status: entity.LoadDelivered,
	})
	require.Error(t, err)
	assert.True(t, domain.IsGuard(err))
	assert.EqualError(t, err, "Cannot change load status from pending to delivered")
}

func TestUpdateLoadStatus_TerminalIsFrozen(t *testing.T) {
	f := newFixture()
	created := f.createLoad(t)

	_, err := f.uc.UpdateStatus(testCompanyID, created.ID, testUserID, dto.UpdateLoadStatusRequest{
		Status: entity.LoadCancelled,
	})
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(testCompanyID, created.ID, testUserID, dto.UpdateLoadStatusRequest{
		Status: entity.LoadAssigned,
	})
	require.Error(t, err)
	assert.True(t, domain.IsGuard(err))
}

func TestLoad_WrongTenantIsAbsent(t *testing.T) {
	f := newFixture()
	created := f.createLoad(t)

	_, err := f.uc.GetByID("99999999-9999-4999-8999-999999999999", created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
