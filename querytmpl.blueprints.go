package querytmpl

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// BlueprintQuery is a built-in saved query provisioned once per user.
// ID is stable so provisioning can tell which blueprints already exist.
type BlueprintQuery struct {
	ID     string `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Query  string `yaml:"query" json:"query"`
	Values Values `yaml:"values,omitempty" json:"values,omitempty"`
}

// DefaultBlueprints returns the built-in SEC filing searches.
func DefaultBlueprints() []BlueprintQuery {
	return []BlueprintQuery{
		{
			ID:    "bp_latest_by_form_type",
			Name:  "Latest filings by form type",
			Query: "form_type = {Form Type:FormTypes:8-K} order by snowflake desc limit {Limit:NumberInput:50}",
		},
		{
			ID:    "bp_annual_reports",
			Name:  "Annual reports",
			Query: "form_type in ('10-K','10-K/A') order by snowflake desc limit {Limit:NumberInput:25}",
		},
		{
			ID:    "bp_quarterly_reports",
			Name:  "Quarterly reports",
			Query: "form_type in ('10-Q','10-Q/A') order by snowflake desc limit {Limit:NumberInput:25}",
		},
		{
			ID:     "bp_company_by_ticker",
			Name:   "Filings for a ticker",
			Query:  "cik = (select cik from ticker where ticker ilike {Ticker:StringInput:MSFT}) order by snowflake desc limit {Limit:NumberInput:50}",
			Values: Values{Text("MSFT"), Number(50)},
		},
		{
			ID:    "bp_ticker_form_type",
			Name:  "Ticker filings by form type",
			Query: "cik = (select cik from ticker where ticker ilike {Ticker:StringInput:AAPL}) and form_type = {Form Type:FormTypes:10-K} order by snowflake desc limit {Limit:NumberInput:10}",
		},
		{
			ID:     "bp_tagged_filings",
			Name:   "Filings with tags",
			Query:  "array[{Tags:Tags:Presentation}] && tags order by snowflake desc limit {Limit:NumberInput:50}",
			Values: Values{List{"Presentation"}, Number(50)},
		},
		{
			ID:    "bp_insider_activity",
			Name:  "Insider ownership filings",
			Query: "form_type in ('3','4','5') order by snowflake desc limit {Limit:NumberInput:50}",
		},
		{
			ID:    "bp_exclude_insider",
			Name:  "Everything except insider filings",
			Query: "form_type not in ('3','4','5') order by snowflake desc limit {Limit:NumberInput:50}",
		},
		{
			ID:    "bp_institutional_holdings",
			Name:  "13F holdings reports",
			Query: "form_type = '13F-HR' order by snowflake desc limit {Limit:NumberInput:25}",
		},
		{
			ID:    "bp_beneficial_ownership",
			Name:  "Beneficial ownership schedules",
			Query: "form_type in ('SC 13D','SC 13G') order by snowflake desc limit {Limit:NumberInput:25}",
		},
		{
			ID:    "bp_registrations",
			Name:  "New registration statements",
			Query: "form_type = 'S-1' order by snowflake desc limit {Limit:NumberInput:25}",
		},
		{
			ID:    "bp_proxy_statements",
			Name:  "Proxy statements",
			Query: "form_type = 'DEF 14A' order by snowflake desc limit {Limit:NumberInput:25}",
		},
		{
			ID:    "bp_foreign_issuers",
			Name:  "Foreign private issuers",
			Query: "form_type in ('6-K','20-F') order by snowflake desc limit {Limit:NumberInput:25}",
		},
		{
			ID:    "bp_late_filings",
			Name:  "Late filing notices",
			Query: "form_type in ('NT 10-K','NT 10-Q') order by snowflake desc limit {Limit:NumberInput:25}",
		},
		{
			ID:    "bp_oldest_first",
			Name:  "Oldest filings by form type",
			Query: "form_type = {Form Type:FormTypes:10-K} order by date_filed asc limit {Limit:NumberInput:25}",
		},
	}
}

// ParseBlueprintsYAML decodes a YAML sequence of blueprints. Every blueprint
// needs a non-empty ID, unique within the document.
func ParseBlueprintsYAML(data []byte) ([]BlueprintQuery, error) {
	var blueprints []BlueprintQuery
	if err := yaml.Unmarshal(data, &blueprints); err != nil {
		return nil, NewBlueprintParseError(ErrMsgBlueprintParse, err)
	}
	if err := validateBlueprints(blueprints); err != nil {
		return nil, err
	}
	return blueprints, nil
}

func validateBlueprints(blueprints []BlueprintQuery) error {
	seen := make(map[string]bool, len(blueprints))
	for _, bp := range blueprints {
		id := strings.TrimSpace(bp.ID)
		if id == "" {
			return NewBlueprintError(ErrMsgBlueprintEmptyID, "")
		}
		if seen[id] {
			return NewBlueprintError(ErrMsgBlueprintDupID, id)
		}
		seen[id] = true
	}
	return nil
}

// Provisioner creates saved queries from blueprints.
type Provisioner struct {
	storage QueryStorage
	engine  *Engine
	logger  *zap.Logger
}

// NewProvisioner creates a provisioner writing to storage. A nil engine gets
// a default one.
func NewProvisioner(storage QueryStorage, engine *Engine, logger *zap.Logger) (*Provisioner, error) {
	if storage == nil {
		return nil, &StorageError{Message: ErrMsgNilStorage}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if engine == nil {
		var err error
		if engine, err = New(WithLogger(logger)); err != nil {
			return nil, err
		}
	}
	return &Provisioner{storage: storage, engine: engine, logger: logger}, nil
}

// Provision saves a query for each blueprint whose ID is not marked in
// provisioned, then marks it. Blueprints whose template does not parse are
// skipped. The saved queries are returned in blueprint order.
func (p *Provisioner) Provision(ctx context.Context, blueprints []BlueprintQuery, provisioned map[string]bool) ([]*SavedQuery, error) {
	if err := validateBlueprints(blueprints); err != nil {
		return nil, err
	}

	created := []*SavedQuery{}
	for _, bp := range blueprints {
		if provisioned != nil && provisioned[bp.ID] {
			continue
		}
		q, ok := p.fromBlueprint(bp)
		if !ok {
			continue
		}
		if err := p.storage.Save(ctx, q); err != nil {
			return created, err
		}
		if provisioned != nil {
			provisioned[bp.ID] = true
		}
		p.logger.Debug(LogMsgBlueprintCreated,
			zap.String(LogFieldBlueprintID, bp.ID),
			zap.String(LogFieldQueryID, string(q.ID)))
		created = append(created, q)
	}
	return created, nil
}

// RestoreDefaults re-creates the blueprints that have no saved query linked
// to them. Queries detached from their blueprint do not count as linked.
func (p *Provisioner) RestoreDefaults(ctx context.Context, blueprints []BlueprintQuery) ([]*SavedQuery, error) {
	if err := validateBlueprints(blueprints); err != nil {
		return nil, err
	}

	existing, err := p.storage.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	linked := make(map[string]bool, len(existing))
	for _, q := range existing {
		if q.BlueprintID != "" {
			linked[q.BlueprintID] = true
		}
	}

	restored := []*SavedQuery{}
	for _, bp := range blueprints {
		if linked[bp.ID] {
			continue
		}
		q, ok := p.fromBlueprint(bp)
		if !ok {
			continue
		}
		if err := p.storage.Save(ctx, q); err != nil {
			return restored, err
		}
		p.logger.Debug(LogMsgBlueprintRestored,
			zap.String(LogFieldBlueprintID, bp.ID),
			zap.String(LogFieldQueryID, string(q.ID)))
		restored = append(restored, q)
	}
	return restored, nil
}

// fromBlueprint builds an unsaved query with one value per placeholder.
func (p *Provisioner) fromBlueprint(bp BlueprintQuery) (*SavedQuery, bool) {
	parsed := p.engine.Parse(bp.Query)
	if !parsed.IsValid {
		p.logger.Warn(LogMsgBlueprintSkipped,
			zap.String(LogFieldBlueprintID, bp.ID),
			zap.Strings(LogFieldMessages, parsed.Messages()))
		return nil, false
	}
	values := SyncValues(parsed, bp.Values.Clone(), p.engine.DefaultValues(parsed))
	return &SavedQuery{
		Name:        bp.Name,
		Query:       bp.Query,
		Values:      values,
		BlueprintID: bp.ID,
	}, true
}

// UpdateQuery replaces the query text. A changed text detaches the query from
// its blueprint so restoring defaults brings the original back.
func (q *SavedQuery) UpdateQuery(text string) {
	if text != q.Query {
		q.BlueprintID = ""
	}
	q.Query = text
}
