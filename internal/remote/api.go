package remote

import (
	"context"
	"net/url"
	"strconv"
	"strings"
)

// Resource paths of the REST API
const (
	PathSystems      = "/api/systems"
	PathSites        = "/api/site"
	PathVehicles     = "/api/vehicle"
	PathDevices      = "/api/system-device"
	PathBatteries    = "/api/batteries"
	PathMarketPrices = "/api/market-price/day-ahead"
)

// ListPageSize is the page size requested by every list call.
const ListPageSize = 10

// ListScope is the fixed creator/assignee filter applied to site, vehicle and
// device lists. It is a static business default, not a user choice.
type ListScope struct {
	Name      string
	CreatedBy string
	AssignTo  string
}

// DefaultScope is the filter the bot ships with.
var DefaultScope = ListScope{Name: "Office", CreatedBy: "2", AssignTo: "5"}

// BatteryPath returns the battery detail path for an external code.
func BatteryPath(externalCode string) string {
	return PathBatteries + "/" + url.PathEscape(externalCode)
}

// OperationModePath returns the operation mode path for an external code.
func OperationModePath(externalCode string) string {
	return BatteryPath(externalCode) + "/operation-mode"
}

func pageQuery() url.Values {
	q := url.Values{}
	q.Set("page", "1")
	q.Set("pageSize", strconv.Itoa(ListPageSize))
	q.Set("sortOrder", "asc")
	q.Set("sortProperty", "name")
	return q
}

func (c *Client) scopedQuery() url.Values {
	q := pageQuery()
	if c.Scope.Name != "" {
		q.Set("name", c.Scope.Name)
	}
	if c.Scope.CreatedBy != "" {
		q.Set("created_by", c.Scope.CreatedBy)
	}
	if c.Scope.AssignTo != "" {
		q.Set("assign_to", c.Scope.AssignTo)
	}
	return q
}

// ListSystems returns the first page of systems sorted by name.
func (c *Client) ListSystems(ctx context.Context) ([]Asset, error) {
	var env systemsEnvelope
	if err := c.Get(ctx, PathSystems, pageQuery(), c.Timeout, &env); err != nil {
		return nil, err
	}
	return env.Data.Systems, nil
}

// ListSites returns the first page of sites within the fixed scope.
func (c *Client) ListSites(ctx context.Context) ([]Asset, error) {
	var env sitesEnvelope
	if err := c.Get(ctx, PathSites, c.scopedQuery(), c.Timeout, &env); err != nil {
		return nil, err
	}
	return env.Data.Sites, nil
}

// ListVehicles returns the first page of vehicles within the fixed scope.
func (c *Client) ListVehicles(ctx context.Context) ([]Asset, error) {
	var env vehiclesEnvelope
	if err := c.Get(ctx, PathVehicles, c.scopedQuery(), c.Timeout, &env); err != nil {
		return nil, err
	}
	return env.Data.Vehicles, nil
}

// ListDevices returns the first page of system devices within the fixed scope.
func (c *Client) ListDevices(ctx context.Context) ([]Device, error) {
	var env devicesEnvelope
	if err := c.Get(ctx, PathDevices, c.scopedQuery(), c.Timeout, &env); err != nil {
		return nil, err
	}
	return env.Data.Devices, nil
}

// GetBattery reads the live status of a battery. It uses the shorter
// StatusTimeout.
func (c *Client) GetBattery(ctx context.Context, externalCode string) (*BatteryStatus, error) {
	path := BatteryPath(externalCode)
	if strings.TrimSpace(externalCode) == "" {
		return nil, NewValidationError(path, "external code is required")
	}

	var status BatteryStatus
	if err := c.Get(ctx, path, nil, c.StatusTimeout, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// SetOperationMode switches a battery to mode. Modes outside OperationModes
// are refused without a request.
func (c *Client) SetOperationMode(ctx context.Context, externalCode string, mode OperationMode) error {
	path := OperationModePath(externalCode)
	if strings.TrimSpace(externalCode) == "" {
		return NewValidationError(path, "external code is required")
	}
	if !mode.Valid() {
		return NewValidationError(path, "unsupported operation mode "+strconv.Quote(string(mode)))
	}

	body := SetOperationModeRequest{BatteryID: externalCode, OperationMode: mode}
	return c.Post(ctx, path, body, c.Timeout, nil)
}

// DayAheadPrices returns the day-ahead prices for an ENTSO-E region code.
func (c *Client) DayAheadPrices(ctx context.Context, countryCode string) ([]PricePoint, error) {
	q := url.Values{}
	q.Set("country", countryCode)

	var env pricesEnvelope
	if err := c.Get(ctx, PathMarketPrices, q, c.Timeout, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}
