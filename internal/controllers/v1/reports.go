package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quote-zero/backend/internal/httputil"
	"github.com/quote-zero/backend/internal/models"
	"github.com/quote-zero/backend/internal/reports"
	"github.com/quote-zero/backend/internal/types"
	qz_uuid "github.com/quote-zero/backend/internal/uuid"
	"golang.org/x/text/language"
)

func RegisterReportRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("/quotes", OptionsQuoteReport)
		r.GET("/quotes", GetQuoteReport)
	}
}

type ReportQuery struct {
	Period string       `form:"period"` // Reporting granularity. One of: day, week, month, year. Defaults to month.
	Locale string       `form:"locale"` // BCP 47 language tag selecting the first day of the week. Defaults to a Sunday week start.
	Owner  qz_uuid.UUID `form:"owner"`  // Only aggregate quotes of this owner
}

type ReportResponse struct {
	Data  *reports.Report `json:"data"`                                            // The report
	Error *string         `json:"error" example:"period must be one of: day, week, month, year"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/v1/reports/quotes [options]
func OptionsQuoteReport(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Quote report
// @Description	Aggregates the quotes drafted in the reporting window into calendar buckets with count, total and average, plus the status distribution. Trashed quotes are not counted.
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	ReportResponse
// @Failure		400	{object}	ReportResponse
// @Failure		500	{object}	ReportResponse
// @Router			/v1/reports/quotes [get]
// @Param			period	query	string	false	"Reporting granularity. One of: day, week, month, year. Defaults to month."
// @Param			locale	query	string	false	"BCP 47 language tag selecting the first day of the week. Defaults to a Sunday week start."
// @Param			owner	query	string	false	"Only aggregate quotes of this owner"
func GetQuoteReport(c *gin.Context) {
	var query ReportQuery

	if err := c.Bind(&query); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ReportResponse{
			Error: &s,
		})
		return
	}

	period := types.PeriodMonth
	if query.Period != "" {
		p, err := types.ParsePeriod(query.Period)
		if err != nil {
			s := err.Error()
			c.JSON(http.StatusBadRequest, ReportResponse{
				Error: &s,
			})
			return
		}
		period = p
	}

	weekStart := time.Sunday
	if query.Locale != "" {
		tag, err := language.Parse(query.Locale)
		if err != nil {
			s := errLocaleInvalid.Error()
			c.JSON(http.StatusBadRequest, ReportResponse{
				Error: &s,
			})
			return
		}
		weekStart = weekStartFor(tag)
	}

	now := time.Now().In(time.UTC)

	q := models.DB.
		Order("datetime(quotes.created_at) ASC").
		Where("datetime(quotes.created_at) >= datetime(?)", period.LookbackStart(now))

	if query.Owner != qz_uuid.Nil {
		q = q.Where("quotes.owner_id = ?", query.Owner.UUID)
	}

	var quotes []models.Quote
	err := q.Find(&quotes).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ReportResponse{
			Error: &s,
		})
		return
	}

	report := reports.Aggregate(quotes, period, now, weekStart)
	c.JSON(http.StatusOK, ReportResponse{Data: &report})
}

// weekStartFor returns the first day of the week for a language tag.
// The region is inferred through likely subtags when the tag does not
// carry one.
func weekStartFor(tag language.Tag) time.Weekday {
	region, _ := tag.Region()

	switch region.String() {
	case "BR", "CA", "CO", "IL", "IN", "JP", "KR", "MX", "PE", "PH", "TW", "US", "ZA":
		return time.Sunday
	}

	return time.Monday
}
