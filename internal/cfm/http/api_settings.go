package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type settingRequest struct {
	HTTPAddr *string `json:"http_addr"`
	Root     *string `json:"root"`
	Username *string `json:"username"`
	FromDate *string `json:"from_date"`
	ToDate   *string `json:"to_date"`
	Language *string `json:"language"`
}

type settingResponse struct {
	HTTPAddr    string `json:"http_addr"`
	HTTPEnabled bool   `json:"http_enabled"`
	Root        string `json:"root"`
	Username    string `json:"username"`
	Language    string `json:"language"`
	DateRange   string `json:"date_range"`
}

func (s *Service) handleGetSetting(c *gin.Context) {
	c.JSON(http.StatusOK, s.buildSettingResponse())
}

func (s *Service) handleUpdateSetting(c *gin.Context) {
	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload", "detail": err.Error()})
		return
	}

	if req.HTTPAddr != nil {
		trimmed := strings.TrimSpace(*req.HTTPAddr)
		if err := s.control.SetHTTPAddr(trimmed); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	if req.Root != nil {
		if err := s.control.SetRoot(strings.TrimSpace(*req.Root)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	if req.Username != nil {
		s.control.SetUsername(strings.TrimSpace(*req.Username))
	}

	if req.FromDate != nil || req.ToDate != nil {
		dates := s.conf.GetDateRange()
		from := dates.From.Format("2006-01-02")
		to := dates.To.Format("2006-01-02")
		if req.FromDate != nil {
			from = strings.TrimSpace(*req.FromDate)
		}
		if req.ToDate != nil {
			to = strings.TrimSpace(*req.ToDate)
		}
		s.control.SetDates(from, to)
	}

	if req.Language != nil {
		s.control.SetLanguage(strings.TrimSpace(*req.Language))
	}

	c.JSON(http.StatusOK, s.buildSettingResponse())
}

func (s *Service) buildSettingResponse() settingResponse {
	return settingResponse{
		HTTPAddr:    s.conf.GetHTTPAddr(),
		HTTPEnabled: s.conf.IsHTTPEnabled(),
		Root:        s.conf.GetRoot(),
		Username:    s.conf.GetUsername(),
		Language:    s.conf.GetLanguage(),
		DateRange:   s.conf.GetDateRange().String(),
	}
}
