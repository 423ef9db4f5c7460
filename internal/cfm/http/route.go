package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jkwiatkowski/cfm/internal/cfm/stats"
	"github.com/jkwiatkowski/cfm/internal/errors"
	"github.com/jkwiatkowski/cfm/internal/lang"
	"github.com/jkwiatkowski/cfm/internal/model"
	"github.com/jkwiatkowski/cfm/internal/rowstore"
	"github.com/jkwiatkowski/cfm/pkg/util"
)

func (s *Service) initRouter() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := s.router.Group("/api/v1")
	api.GET("/chats", s.handleChats)
	api.GET("/chats/:id", s.handleChatDetail)
	api.GET("/totals", s.handleTotals)
	api.GET("/profile", s.handleProfile)
	api.POST("/scan", s.handleScan)
	api.GET("/setting", s.handleGetSetting)
	api.POST("/setting", s.handleUpdateSetting)
}

type chatsResponse struct {
	ScanID string         `json:"scan_id"`
	Count  int            `json:"count"`
	Rows   []rowstore.Row `json:"rows"`
}

// handleChats serves the displayed row set. Query parameters:
//
//	q            substring search across all displayed values
//	sort         comma list of columns, "-" prefix for descending
//	name, type   exact-match filters
//	participants comma list; rows must contain every named participant
//	min_X, max_X inclusive bounds for numeric column X (msg, call,
//	             photos, gifs, videos, files, chars, pep)
func (s *Service) handleChats(c *gin.Context) {
	sortKeys, err := parseSortParam(c.Query("sort"))
	if err != nil {
		errors.Err(c, errors.InvalidArg("sort"))
		return
	}

	filter, err := parseFilterParams(c)
	if err != nil {
		errors.Err(c, err)
		return
	}

	rows, scanID, err := s.db.Query(stats.QueryOptions{
		Search: c.Query("q"),
		Filter: filter,
		Sort:   sortKeys,
	})
	if err != nil {
		errors.Err(c, err)
		return
	}

	c.JSON(http.StatusOK, chatsResponse{ScanID: scanID, Count: len(rows), Rows: rows})
}

type chatDetailResponse struct {
	*model.ConversationAggregate
	KindLabel    string                `json:"kind_label"`
	FirstMessage string                `json:"first_message,omitempty"`
	CallDuration string                `json:"call_duration_text"`
	Averages     model.MessageAverages `json:"averages"`
}

func (s *Service) handleChatDetail(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		errors.Err(c, errors.InvalidArg("id"))
		return
	}

	agg, err := s.db.Detail(id)
	if err != nil {
		errors.Err(c, err)
		return
	}

	language := s.conf.GetLanguage()
	kindKey := lang.KeyPrivateChat
	if agg.Kind == model.ChatGroup {
		kindKey = lang.KeyGroupChat
	}

	resp := chatDetailResponse{
		ConversationAggregate: agg,
		KindLabel:             lang.T(language, kindKey),
		CallDuration:          (time.Duration(agg.CallDuration) * time.Second).String(),
		Averages:              agg.Averages(time.Now()),
	}
	if agg.EarliestTimestampMs != 0 {
		resp.FirstMessage = time.UnixMilli(agg.EarliestTimestampMs).Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Service) handleTotals(c *gin.Context) {
	totals, conversations, truncated, err := s.db.Totals()
	if err != nil {
		errors.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totals":        totals,
		"conversations": conversations,
		"truncated":     truncated,
	})
}

func (s *Service) handleProfile(c *gin.Context) {
	totals, conversations, _, err := s.db.Totals()
	if err != nil {
		errors.Err(c, err)
		return
	}
	username := s.conf.GetUsername()
	if strings.TrimSpace(username) == "" {
		username = lang.T(s.conf.GetLanguage(), lang.KeyNotApplicable)
	}
	c.JSON(http.StatusOK, gin.H{
		"username":      username,
		"conversations": conversations,
		"totals":        totals,
		"date_range":    s.conf.GetDateRange().String(),
	})
}

func (s *Service) handleScan(c *gin.Context) {
	if err := s.control.Rescan(); err != nil {
		errors.Err(c, err)
		return
	}
	totals, conversations, truncated, err := s.db.Totals()
	if err != nil {
		errors.Err(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totals":        totals,
		"conversations": conversations,
		"truncated":     truncated,
	})
}

func parseSortParam(raw string) ([]rowstore.SortKey, error) {
	if raw == "" {
		return nil, nil
	}
	parts := util.Str2List(raw, ",")
	keys := make([]rowstore.SortKey, 0, len(parts))
	for _, p := range parts {
		key := rowstore.SortKey{Column: p}
		if strings.HasPrefix(p, "-") {
			key = rowstore.SortKey{Column: p[1:], Reversed: true}
		}
		if _, ok := rowstore.ColumnBiases[key.Column]; !ok {
			return nil, errors.InvalidArg("sort")
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func parseFilterParams(c *gin.Context) (rowstore.Filter, error) {
	filter := rowstore.Filter{
		Name:         c.Query("name"),
		Kind:         model.ChatKind(c.Query("type")),
		Participants: util.Str2List(c.Query("participants"), ","),
	}
	if filter.Kind != "" && filter.Kind != model.ChatPrivate && filter.Kind != model.ChatGroup {
		return filter, errors.InvalidArg("type")
	}

	ranges := make(map[string]rowstore.Range)
	for column, bias := range rowstore.ColumnBiases {
		if bias != rowstore.Numberwise {
			continue
		}
		rng := rowstore.NewRange()
		bounded := false
		if raw := c.Query("min_" + column); raw != "" {
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || v < 0 {
				return filter, errors.InvalidArg("min_" + column)
			}
			rng.Min = v
			bounded = true
		}
		if raw := c.Query("max_" + column); raw != "" {
			v, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || v < 0 {
				return filter, errors.InvalidArg("max_" + column)
			}
			rng.Max = v
			bounded = true
		}
		if bounded {
			ranges[column] = rng
		}
	}
	if len(ranges) > 0 {
		filter.Ranges = ranges
	}
	return filter, nil
}
