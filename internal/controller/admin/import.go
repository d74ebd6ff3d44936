package admin

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobdesk-backend/internal/database"
	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"
)

// ImportSummary reports the outcome of a bulk candidate import
type ImportSummary struct {
	Success bool     `json:"success"`
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}

// ImportCandidates bulk-creates user accounts from an uploaded CSV of
// name,email,phone rows. Each row is handled on its own: a malformed or
// duplicate row is counted and skipped, never aborting the rest of the
// file. Imported accounts carry no password, the candidate sets one
// through the usual reset path.
// @Summary Bulk import candidates from CSV
// @Description CSV columns: name, email, phone. A header row is detected and skipped.
// @Tags Admin
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param candidates formData file true "CSV file of candidates"
// @Success 200 {object} ImportSummary "Per-row outcome counts"
// @Failure 400 {object} utilities.ErrorResponse "Missing or unreadable file"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Router /api/admin/import-candidates [post]
func (ac *AdminController) ImportCandidates(c *gin.Context) {
	rawFile, err := c.FormFile("candidates")
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("CSV file must be provided in the 'candidates' field"))
		return
	}

	f, err := rawFile.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.Fail("Cannot open file"))
		return
	}
	defer func() {
		_ = f.Close()
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	summary := ImportSummary{Success: true}
	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: %s", line, err.Error()))
			continue
		}

		if len(record) < 2 {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: expected name,email[,phone]", line))
			continue
		}

		name := strings.TrimSpace(record[0])
		email := strings.TrimSpace(record[1])
		phone := ""
		if len(record) > 2 {
			phone = strings.TrimSpace(record[2])
		}

		// Header row
		if line == 1 && strings.EqualFold(name, "name") && strings.EqualFold(email, "email") {
			continue
		}

		if name == "" || email == "" || !strings.Contains(email, "@") {
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: invalid name or email", line))
			continue
		}

		user := model.User{
			Name:  name,
			Email: email,
			Phone: phone,
		}
		if err := ac.DB.Create(&user).Error; err != nil {
			if database.IsUniqueViolation(err) {
				summary.Skipped++
				continue
			}
			summary.Failed++
			summary.Errors = append(summary.Errors, fmt.Sprintf("line %d: %s", line, err.Error()))
			continue
		}
		summary.Created++
	}

	c.JSON(http.StatusOK, summary)
}
