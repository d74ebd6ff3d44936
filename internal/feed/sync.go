// Package feed ingests the external XML job listing on a daily
// schedule and mirrors its records into the local jobs table.
package feed

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/model"
)

// Schedule is the daily sync cron expression (midnight).
const Schedule = "0 0 * * *"

const fetchTimeout = 2 * time.Minute

// Syncer pulls the external feed and upserts its records. At most one
// run is in flight at a time; an overlapping trigger is skipped.
type Syncer struct {
	DB      *database.DBinstanceStruct
	Logger  *zap.Logger
	FeedURL string
	Client  *http.Client

	running atomic.Bool
}

// NewSyncer builds a Syncer reading the feed URL from the FEED_URL
// environment variable.
func NewSyncer(db *database.DBinstanceStruct, logger *zap.Logger) *Syncer {
	return &Syncer{
		DB:      db,
		Logger:  logger,
		FeedURL: os.Getenv("FEED_URL"),
		Client:  &http.Client{Timeout: fetchTimeout},
	}
}

// Start registers the daily schedule and starts the cron runner. The
// returned cron can be stopped on shutdown.
func (s *Syncer) Start() (*cron.Cron, error) {
	runner := cron.New()
	_, err := runner.AddFunc(Schedule, func() {
		if _, _, err := s.Run(context.Background()); err != nil {
			s.Logger.Error("feed sync failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule feed sync: %w", err)
	}
	runner.Start()
	return runner, nil
}

type feedEnvelope struct {
	XMLName xml.Name     `xml:"jobs"`
	Records []feedRecord `xml:"job"`
}

type feedRecord struct {
	ID          string `xml:"id"`
	Title       string `xml:"title"`
	Description string `xml:"description"`
	Location    string `xml:"location"`
	Category    string `xml:"category"`
	Level       string `xml:"level"`
	Experience  int    `xml:"experience"`
	Salary      int    `xml:"salary"`
	Openings    int    `xml:"openings"`
	Type        string `xml:"type"`
	City        string `xml:"city"`
	State       string `xml:"state"`
	Country     string `xml:"country"`
}

// Run executes one sync pass: fetch, parse, upsert. One bad record is
// logged and skipped, it never fails the whole run. Returns how many
// records were written and how many the feed carried.
func (s *Syncer) Run(ctx context.Context) (synced, total int, err error) {
	if !s.running.CompareAndSwap(false, true) {
		s.Logger.Warn("feed sync already in flight, skipping run")
		return 0, 0, nil
	}
	defer s.running.Store(false)

	if s.FeedURL == "" {
		return 0, 0, errors.New("FEED_URL is not set")
	}

	started := time.Now()

	body, err := s.fetch(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch feed: %w", err)
	}

	var envelope feedEnvelope
	if err := xml.Unmarshal(body, &envelope); err != nil {
		return 0, 0, fmt.Errorf("failed to parse feed: %w", err)
	}
	total = len(envelope.Records)

	company, err := s.feedCompany()
	if err != nil {
		return 0, total, fmt.Errorf("failed to resolve feed company: %w", err)
	}

	for _, record := range envelope.Records {
		if err := s.upsert(company, record); err != nil {
			s.Logger.Error("failed to sync feed record",
				zap.String("feed_id", record.ID),
				zap.String("title", record.Title),
				zap.Error(err),
			)
			continue
		}
		synced++
	}

	s.Logger.Info("feed sync finished",
		zap.Int("synced", synced),
		zap.Int("total", total),
		zap.Duration("took", time.Since(started)),
	)
	return synced, total, nil
}

// fetch downloads the feed with exponential backoff on transient errors.
func (s *Syncer) fetch(ctx context.Context) ([]byte, error) {
	var body []byte

	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.FeedURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}

		resp, err := s.Client.Do(req)
		if err != nil {
			return err
		}
		defer func() {
			_ = resp.Body.Close()
		}()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("feed answered status %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return body, nil
}

// feedCompany resolves or creates the principal that owns feed jobs.
// It is verified and premium so its listings behave like any other
// company's, but carries no password.
func (s *Syncer) feedCompany() (model.Company, error) {
	name := os.Getenv("FEED_COMPANY_NAME")
	if name == "" {
		name = "JustJob"
	}
	email := os.Getenv("FEED_COMPANY_EMAIL")
	if email == "" {
		email = "feed@justjob.example"
	}

	company := model.Company{}
	err := s.DB.Where("name = ? AND email = ?", name, email).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		company = model.Company{
			Name:              name,
			Email:             email,
			IsVerified:        true,
			HavePremiumAccess: true,
		}
		if err := s.DB.Create(&company).Error; err != nil {
			return company, err
		}
		return company, nil
	}
	return company, err
}

// upsert maps one feed record onto a Job. An existing job is matched by
// feed ID first, then by (title, company, location); matches are
// updated in place, everything else is inserted verified and visible.
func (s *Syncer) upsert(company model.Company, record feedRecord) error {
	if record.Title == "" {
		return errors.New("record has no title")
	}

	info := model.EditableJobInfo{
		Title:          record.Title,
		Description:    record.Description,
		Location:       record.Location,
		Category:       record.Category,
		Level:          record.Level,
		Experience:     record.Experience,
		Salary:         record.Salary,
		Openings:       record.Openings,
		EmploymentType: normalizeEmploymentType(record.Type),
	}
	details := model.CompanyDetails{
		Name:    company.Name,
		City:    record.City,
		State:   record.State,
		Country: record.Country,
	}

	existing := model.Job{}
	var err error
	if record.ID != "" {
		err = s.DB.Where("justjob_id = ?", record.ID).First(&existing).Error
	} else {
		err = gorm.ErrRecordNotFound
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = s.DB.Where("title = ? AND company_id = ? AND location = ?",
			record.Title, company.ID, record.Location).First(&existing).Error
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		job := model.Job{
			CompanyID:       company.ID,
			EditableJobInfo: info,
			CompanyDetails:  details,
			Visible:         true,
			IsVerified:      true,
		}
		if record.ID != "" {
			feedID := record.ID
			job.JustjobID = &feedID
		}
		return s.DB.Create(&job).Error

	case err == nil:
		updates := map[string]interface{}{
			"title":           info.Title,
			"description":     info.Description,
			"location":        info.Location,
			"category":        info.Category,
			"level":           info.Level,
			"experience":      info.Experience,
			"salary":          info.Salary,
			"openings":        info.Openings,
			"employment_type": info.EmploymentType,
		}
		if record.ID != "" {
			updates["justjob_id"] = record.ID
		}
		return s.DB.Model(&model.Job{}).Where("id = ?", existing.ID).Updates(updates).Error

	default:
		return err
	}
}

// normalizeEmploymentType maps the feed's free-text type field onto the
// employment type enum, defaulting to full-time.
func normalizeEmploymentType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "part-time", "part time", "parttime":
		return model.EmploymentPartTime
	case "internship", "intern":
		return model.EmploymentInternship
	case "unpaid", "volunteer":
		return model.EmploymentUnpaid
	default:
		return model.EmploymentFullTime
	}
}
