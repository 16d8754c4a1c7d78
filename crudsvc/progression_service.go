package crudsvc

import (
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-crud"
	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/learnpath/go-progressions/command"
	"github.com/learnpath/go-progressions/pkg/requestctx"
	"github.com/learnpath/go-progressions/pkg/types"
	"github.com/learnpath/go-progressions/query"
)

const (
	paramCustomerID    = "customerId"
	paramProgressionID = "learningProgressionId"
)

// ProgressionServiceConfig wires the command/query handlers behind the CRUD
// controller.
type ProgressionServiceConfig struct {
	Create gocommand.Commander[command.ProgressionCreateInput]
	Patch  gocommand.Commander[command.ProgressionPatchInput]
	Detail gocommand.Querier[query.ProgressionDetailFilter, *types.LearningProgression]
	List   gocommand.Querier[query.ProgressionListFilter, types.ProgressionPage]
}

// ProgressionService exposes the progression resource through go-crud.
// Create maps to POST, Update to PATCH semantics; deletes and batch
// operations are disabled.
type ProgressionService struct {
	create gocommand.Commander[command.ProgressionCreateInput]
	patch  gocommand.Commander[command.ProgressionPatchInput]
	detail gocommand.Querier[query.ProgressionDetailFilter, *types.LearningProgression]
	list   gocommand.Querier[query.ProgressionListFilter, types.ProgressionPage]
	logger types.Logger
}

// NewProgressionService constructs the adapter.
func NewProgressionService(cfg ProgressionServiceConfig, opts ...ServiceOption) *ProgressionService {
	options := applyOptions(opts)
	return &ProgressionService{
		create: cfg.Create,
		patch:  cfg.Patch,
		detail: cfg.Detail,
		list:   cfg.List,
		logger: options.logger,
	}
}

var _ crud.Service[*types.LearningProgression] = (*ProgressionService)(nil)

// Create handles POST by delegating to the create command.
func (s *ProgressionService) Create(ctx crud.Context, record *types.LearningProgression) (*types.LearningProgression, error) {
	if s.create == nil {
		return nil, goerrors.New("progression create command missing", goerrors.CategoryInternal).WithCode(goerrors.CodeInternal)
	}
	info, err := requestctx.Resolve(ctx.UserContext())
	if err != nil {
		return nil, err
	}
	customerID, err := paramUUID(ctx, paramCustomerID)
	if err != nil {
		return nil, err
	}
	var result types.LearningProgression
	input := command.ProgressionCreateInput{
		CustomerID:    customerID,
		Progression:   record,
		TouchpointID:  info.TouchpointID,
		APIURL:        info.APIURL,
		CorrelationID: info.CorrelationID,
		Result:        &result,
	}
	if err := s.create.Execute(ctx.UserContext(), input); err != nil {
		return nil, mapCommandError(err)
	}
	return &result, nil
}

// CreateBatch is disabled for this resource.
func (s *ProgressionService) CreateBatch(crud.Context, []*types.LearningProgression) ([]*types.LearningProgression, error) {
	return nil, notSupported(crud.OpCreateBatch)
}

// Update handles PATCH by delegating to the patch orchestrator. The parsed
// body is converted to the sparse patch shape; the route ids win over any
// identifiers carried in the body.
func (s *ProgressionService) Update(ctx crud.Context, record *types.LearningProgression) (*types.LearningProgression, error) {
	if s.patch == nil {
		return nil, goerrors.New("progression patch command missing", goerrors.CategoryInternal).WithCode(goerrors.CodeInternal)
	}
	info, err := requestctx.Resolve(ctx.UserContext())
	if err != nil {
		return nil, err
	}
	customerID, err := paramUUID(ctx, paramCustomerID)
	if err != nil {
		return nil, err
	}
	progressionID, err := paramUUID(ctx, paramProgressionID)
	if err != nil {
		return nil, err
	}
	var result types.PatchResult
	input := command.ProgressionPatchInput{
		CustomerID:    customerID,
		ProgressionID: progressionID,
		Patch:         types.PatchFromProgression(record),
		TouchpointID:  info.TouchpointID,
		APIURL:        info.APIURL,
		CorrelationID: info.CorrelationID,
		Result:        &result,
	}
	if err := s.patch.Execute(ctx.UserContext(), input); err != nil {
		return nil, mapCommandError(err)
	}
	if result.Outcome != types.PatchOutcomeUpdated {
		// go-crud cannot answer 204 from here; hosts mounting the raw
		// transport use pkg/httpmap for the exact contract.
		return nil, goerrors.New("nothing to patch", goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound).
			WithTextCode("NOTHING_TO_PATCH")
	}
	return result.Progression, nil
}

// UpdateBatch is disabled for this resource.
func (s *ProgressionService) UpdateBatch(crud.Context, []*types.LearningProgression) ([]*types.LearningProgression, error) {
	return nil, notSupported(crud.OpUpdateBatch)
}

// Delete is disabled: progressions persist until externally removed.
func (s *ProgressionService) Delete(crud.Context, *types.LearningProgression) error {
	return notSupported(crud.OpDelete)
}

// DeleteBatch is disabled for this resource.
func (s *ProgressionService) DeleteBatch(crud.Context, []*types.LearningProgression) error {
	return notSupported(crud.OpDeleteBatch)
}

// Index lists the customer's progression records.
func (s *ProgressionService) Index(ctx crud.Context, _ []repository.SelectCriteria) ([]*types.LearningProgression, int, error) {
	if s.list == nil {
		return nil, 0, goerrors.New("progression list query missing", goerrors.CategoryInternal).WithCode(goerrors.CodeInternal)
	}
	if _, err := requestctx.Resolve(ctx.UserContext()); err != nil {
		return nil, 0, err
	}
	customerID, err := paramUUID(ctx, paramCustomerID)
	if err != nil {
		return nil, 0, err
	}
	filter := query.ProgressionListFilter{
		CustomerID: customerID,
		Pagination: types.Pagination{
			Limit:  queryInt(ctx, "limit", 20),
			Offset: queryInt(ctx, "offset", 0),
		},
	}
	page, err := s.list.Query(ctx.UserContext(), filter)
	if err != nil {
		return nil, 0, mapCommandError(err)
	}
	records := make([]*types.LearningProgression, 0, len(page.Progressions))
	for i := range page.Progressions {
		records = append(records, &page.Progressions[i])
	}
	return records, page.Total, nil
}

// Show fetches one progression by its record id.
func (s *ProgressionService) Show(ctx crud.Context, id string, _ []repository.SelectCriteria) (*types.LearningProgression, error) {
	if s.detail == nil {
		return nil, goerrors.New("progression detail query missing", goerrors.CategoryInternal).WithCode(goerrors.CodeInternal)
	}
	if _, err := requestctx.Resolve(ctx.UserContext()); err != nil {
		return nil, err
	}
	customerID, err := paramUUID(ctx, paramCustomerID)
	if err != nil {
		return nil, err
	}
	progressionID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	progression, err := s.detail.Query(ctx.UserContext(), query.ProgressionDetailFilter{
		CustomerID:    customerID,
		ProgressionID: progressionID,
	})
	if err != nil {
		return nil, mapCommandError(err)
	}
	return progression, nil
}

// mapCommandError translates domain sentinels into transport categories so
// go-crud controllers answer with the right status family.
func mapCommandError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, types.ErrCustomerReadOnly):
		return goerrors.New("customer is read only", goerrors.CategoryAuthz).
			WithCode(goerrors.CodeForbidden)
	case errors.Is(err, types.ErrCustomerNotFound):
		return goerrors.New("customer not found", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	case errors.Is(err, types.ErrProgressionNotFound):
		return goerrors.New("progression not found", goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound)
	case errors.Is(err, types.ErrTouchpointRequired),
		errors.Is(err, types.ErrAPIURLRequired),
		errors.Is(err, types.ErrCustomerIDRequired),
		errors.Is(err, types.ErrProgressionIDRequired),
		errors.Is(err, types.ErrProgressionRequired):
		return goerrors.New(err.Error(), goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}
	return err
}
