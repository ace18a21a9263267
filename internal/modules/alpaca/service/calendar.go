package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"stonks/internal/models"
)

// GetCalendar возвращает расписание площадки на дату. ok=false — площадка
// в этот день закрыта (выходной/праздник).
func (c *Client) GetCalendar(ctx context.Context, date time.Time) (models.MarketSchedule, bool, error) {
	day := date.In(c.loc).Format("2006-01-02")

	q := url.Values{}
	q.Set("start", day)
	q.Set("end", day)

	req, err := c.newRequest(ctx, http.MethodGet, "/v2/calendar?"+q.Encode(), nil)
	if err != nil {
		return models.MarketSchedule{}, false, fmt.Errorf("GetCalendar new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return models.MarketSchedule{}, false, fmt.Errorf("GetCalendar do: %w", err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return models.MarketSchedule{}, false, fmt.Errorf("GetCalendar http %d: %s", resp.StatusCode, string(data))
	}

	var raw []struct {
		Date  string `json:"date"`
		Open  string `json:"open"`
		Close string `json:"close"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.MarketSchedule{}, false, fmt.Errorf("GetCalendar decode: %w", err)
	}

	// календарь отдаёт только торговые дни: пусто или другая дата — закрыто
	if len(raw) == 0 || raw[0].Date != day {
		return models.MarketSchedule{}, false, nil
	}

	open, err := time.ParseInLocation("2006-01-02 15:04", raw[0].Date+" "+raw[0].Open, c.loc)
	if err != nil {
		return models.MarketSchedule{}, false, fmt.Errorf("GetCalendar open %q: %w", raw[0].Open, err)
	}
	close, err := time.ParseInLocation("2006-01-02 15:04", raw[0].Date+" "+raw[0].Close, c.loc)
	if err != nil {
		return models.MarketSchedule{}, false, fmt.Errorf("GetCalendar close %q: %w", raw[0].Close, err)
	}

	return models.MarketSchedule{Open: open, Close: close}, true, nil
}
