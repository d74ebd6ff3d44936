package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"go.uber.org/zap/zaptest"
)

var testDB *database.DBinstanceStruct
var testTeardown func(context.Context, ...testcontainers.TerminateOption) error

func TestMain(m *testing.M) {
	var err error
	testTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start test db: %v\n", err)
		os.Exit(1)
	}

	m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := testTeardown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "teardown error: %v\n", err)
	}
}

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<jobs>
  <job>
    <id>jj-1001</id>
    <title>Warehouse Supervisor</title>
    <description>Oversee daily warehouse operations.</description>
    <location>Bangkok</location>
    <category>Logistics</category>
    <level>Mid</level>
    <experience>3</experience>
    <salary>32000</salary>
    <openings>2</openings>
    <type>Full Time</type>
    <city>Bangkok</city>
    <state>Bangkok</state>
    <country>Thailand</country>
  </job>
  <job>
    <id>jj-1002</id>
    <title>Summer Intern</title>
    <location>Chiang Mai</location>
    <salary>9000</salary>
    <openings>1</openings>
    <type>intern</type>
  </job>
  <job>
    <title></title>
  </job>
</jobs>`

func feedSyncer(t *testing.T, url string) *Syncer {
	t.Helper()
	s := NewSyncer(testDB, zaptest.NewLogger(t))
	s.FeedURL = url
	return s
}

func TestRunSyncsFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	s := feedSyncer(t, srv.URL)
	synced, total, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, 2, synced, "the titleless record is skipped, not fatal")

	var job model.Job
	require.NoError(t, testDB.First(&job, "justjob_id = ?", "jj-1001").Error)
	assert.Equal(t, "Warehouse Supervisor", job.Title)
	assert.Equal(t, model.EmploymentFullTime, job.EmploymentType)
	assert.True(t, job.IsVerified, "feed jobs list without admin review")
	assert.True(t, job.Visible)

	require.NoError(t, testDB.First(&job, "justjob_id = ?", "jj-1002").Error)
	assert.Equal(t, model.EmploymentInternship, job.EmploymentType)

	var company model.Company
	require.NoError(t, testDB.First(&company, "id = ?", job.CompanyID).Error)
	assert.Equal(t, "JustJob", company.Name)
	assert.True(t, company.IsVerified)
	assert.Empty(t, company.Password)
}

func TestRunIsIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	s := feedSyncer(t, srv.URL)
	_, _, err := s.Run(context.Background())
	require.NoError(t, err)
	_, _, err = s.Run(context.Background())
	require.NoError(t, err)

	var count int64
	testDB.Model(&model.Job{}).Where("justjob_id = ?", "jj-1001").Count(&count)
	assert.Equal(t, int64(1), count, "matched records update in place")
}

func TestRunUpdatesChangedRecord(t *testing.T) {
	updatedFeed := `<jobs><job><id>jj-1001</id><title>Warehouse Supervisor</title><location>Bangkok</location><salary>35000</salary><openings>2</openings></job></jobs>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(updatedFeed))
	}))
	defer srv.Close()

	s := feedSyncer(t, srv.URL)
	synced, total, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, 1, synced)

	var job model.Job
	require.NoError(t, testDB.First(&job, "justjob_id = ?", "jj-1001").Error)
	assert.Equal(t, 35000, job.Salary)
}

func TestRunRetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`<jobs></jobs>`))
	}))
	defer srv.Close()

	s := feedSyncer(t, srv.URL)
	_, total, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestRunWithoutURLFails(t *testing.T) {
	s := feedSyncer(t, "")
	_, _, err := s.Run(context.Background())
	assert.Error(t, err)
}

func TestRunSkipsOverlappingRun(t *testing.T) {
	s := feedSyncer(t, "http://unused.example")
	s.running.Store(true)
	defer s.running.Store(false)

	synced, total, err := s.Run(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, synced)
	assert.Zero(t, total)
}

func TestNormalizeEmploymentType(t *testing.T) {
	assert.Equal(t, model.EmploymentPartTime, normalizeEmploymentType("Part Time"))
	assert.Equal(t, model.EmploymentInternship, normalizeEmploymentType("intern"))
	assert.Equal(t, model.EmploymentUnpaid, normalizeEmploymentType("volunteer"))
	assert.Equal(t, model.EmploymentFullTime, normalizeEmploymentType(""))
	assert.Equal(t, model.EmploymentFullTime, normalizeEmploymentType("contract"))
}
