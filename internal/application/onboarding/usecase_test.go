package onboarding_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkwe-logistics/fleetflow-api/internal/application/dto"
	"github.com/nkwe-logistics/fleetflow-api/internal/application/onboarding"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/entity"
	"github.com/nkwe-logistics/fleetflow-api/internal/domain/repository"
)

// memApplicationRepo keeps applications in memory with the processed-once
// MarkProcessed semantics of the SQL layer.
type memApplicationRepo struct {
	apps map[string]*entity.FleetApplication
}

func newMemApplicationRepo() *memApplicationRepo {
	return &memApplicationRepo{apps: map[string]*entity.FleetApplication{}}
}

func (m *memApplicationRepo) Create(app *entity.FleetApplication) error {
	cp := *app
	m.apps[app.ID] = &cp
	return nil
}

func (m *memApplicationRepo) GetByID(id string) (*entity.FleetApplication, error) {
	app, ok := m.apps[id]
	if !ok {
		return nil, nil
	}
	cp := *app
	return &cp, nil
}

func (m *memApplicationRepo) List(status string, limit, offset int) ([]*entity.FleetApplication, error) {
	var out []*entity.FleetApplication
	for _, app := range m.apps {
		if status == "" || app.Status == status {
			cp := *app
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memApplicationRepo) MarkProcessed(id, status string, companyID *string, processedBy string) (int64, error) {
	app, ok := m.apps[id]
	if !ok || app.Status != entity.ApplicationPending {
		return 0, nil
	}
	now := time.Now()
	app.Status = status
	app.CompanyID = companyID
	app.ProcessedBy = &processedBy
	app.ProcessedAt = &now
	return 1, nil
}

// memCompanyRepo records companies created during approval.
type memCompanyRepo struct {
	created []*entity.Company
}

func (m *memCompanyRepo) Create(c *entity.Company) error {
	cp := *c
	m.created = append(m.created, &cp)
	return nil
}
func (m *memCompanyRepo) GetByID(id string) (*entity.Company, error)          { return nil, nil }
func (m *memCompanyRepo) List(limit, offset int) ([]*entity.Company, error)   { return nil, nil }
func (m *memCompanyRepo) Update(c *entity.Company) error                      { return nil }

type fakeApprovalRunner struct {
	apps      *memApplicationRepo
	companies *memCompanyRepo
}

func (f *fakeApprovalRunner) RunApproval(ctx context.Context, fn func(repository.ApplicationRepository, repository.CompanyRepository) error) error {
	return fn(f.apps, f.companies)
}

func newOnboardingFixture(t *testing.T) (*onboarding.OnboardingUseCase, *memCompanyRepo, string) {
	t.Helper()
	apps := newMemApplicationRepo()
	companies := &memCompanyRepo{}
	uc := onboarding.NewOnboardingUseCase(apps, &fakeApprovalRunner{apps: apps, companies: companies})

	created, err := uc.Create(dto.CreateApplicationRequest{
		CompanyName:  "Limpopo Haulage",
		RegNumber:    "CO-2024-11873",
		ContactName:  "P. Ndlovu",
		ContactEmail: "ops@limpopohaulage.example",
		ContactPhone: "+27 82 000 0000",
		FleetSize:    8,
	})
	require.NoError(t, err)
	require.Equal(t, entity.ApplicationPending, created.Status)
	return uc, companies, created.ID
}

func TestApproveApplication_CreatesCompany(t *testing.T) {
	uc, companies, id := newOnboardingFixture(t)

	resp, err := uc.Approve(context.Background(), id, "reviewer-1")
	require.NoError(t, err)

	assert.Equal(t, entity.ApplicationApproved, resp.Status)
	require.NotNil(t, resp.CompanyID)
	require.Len(t, companies.created, 1)
	company := companies.created[0]
	assert.Equal(t, *resp.CompanyID, company.ID)
	assert.Equal(t, "Limpopo Haulage", company.Name)
	assert.Equal(t, "active", company.Status)
}

func TestApproveApplication_Twice(t *testing.T) {
	uc, companies, id := newOnboardingFixture(t)

	_, err := uc.Approve(context.Background(), id, "reviewer-1")
	require.NoError(t, err)

	// A processed application behaves as absent for review actions.
	_, err = uc.Approve(context.Background(), id, "reviewer-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, companies.created, 1, "no second company may be created")
}

func TestRejectApplication(t *testing.T) {
	uc, companies, id := newOnboardingFixture(t)

	resp, err := uc.Reject(id, "reviewer-1")
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationRejected, resp.Status)
	assert.Nil(t, resp.CompanyID)
	assert.Empty(t, companies.created)

	_, err = uc.Approve(context.Background(), id, "reviewer-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRejectApplication_Unknown(t *testing.T) {
	uc, _, _ := newOnboardingFixture(t)

	_, err := uc.Reject("does-not-exist", "reviewer-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
