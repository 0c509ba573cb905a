package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Rosseoko/erandi/internal/locale"
	"github.com/Rosseoko/erandi/internal/model"
	"github.com/Rosseoko/erandi/internal/store"
)

// DefaultTimeout bounds one walk segment when no timeout is configured.
const DefaultTimeout = 10 * time.Minute

// Profiler turns a teacher request into a project profile.
type Profiler interface {
	CreateProfile(ctx context.Context, req model.TeacherRequest) (*model.ProjectProfile, error)
}

// Aligner maps a profile onto educational standards.
type Aligner interface {
	Align(ctx context.Context, profile *model.ProjectProfile) (*model.StandardsAlignment, error)
}

// Enricher runs knowledge-graph analysis on an aligned standard.
type Enricher interface {
	Enrich(ctx context.Context, alignment *model.StandardsAlignment, code string) (*model.KnowledgeGraphResult, error)
}

// Designer generates the three project design options.
type Designer interface {
	Design(ctx context.Context, dc *model.DesignContext) (*model.ProjectOptionsResult, error)
}

// Developer builds one component plan of the final unit.
type Developer interface {
	Develop(ctx context.Context, kind string, dc *model.DesignContext, opt *model.ProjectOption, feedback string) (*model.ComponentPlan, error)
}

// Assembler merges approved components into the final unit.
type Assembler interface {
	Assemble(ctx context.Context, opt *model.ProjectOption, curriculum, assessment, resources *model.ComponentPlan, feedback string) (*model.FinalUnit, error)
}

// Agents bundles the stage agents the walk dispatches to.
type Agents struct {
	Profiler  Profiler
	Aligner   Aligner
	Enricher  Enricher
	Designer  Designer
	Developer Developer
	Assembler Assembler
}

// SubmitRequest starts a new authoring run.
type SubmitRequest struct {
	RawMessage   string `json:"raw_message"`
	SessionID    string `json:"session_id,omitempty"`
	Language     string `json:"language,omitempty"`
	ClassProfile string `json:"class_profile,omitempty"`
}

// Input resumes a parked run. Kind must match the input the run is
// awaiting; the remaining fields carry the payload for that kind.
type Input struct {
	Kind         string `json:"kind"`
	Message      string `json:"message,omitempty"`
	Selection    *int   `json:"selection,omitempty"`
	Approved     bool   `json:"approved,omitempty"`
	Feedback     string `json:"feedback,omitempty"`
	RevisionType string `json:"revision_type,omitempty"`
}

// ErrNotAwaiting is returned when Resume is called on a run that is not
// parked on input.
var ErrNotAwaiting = fmt.Errorf("run is not awaiting input")

// Engine orchestrates asynchronous authoring runs.
type Engine struct {
	store   store.Store
	agents  Agents
	logger  *slog.Logger
	timeout time.Duration
	wg      sync.WaitGroup
	broker  *EventBroker
}

// NewEngine creates a new authoring engine. timeout bounds each walk
// segment; zero selects DefaultTimeout.
func NewEngine(s store.Store, agents Agents, timeout time.Duration, logger *slog.Logger) *Engine {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Engine{
		store:   s,
		agents:  agents,
		logger:  logger,
		timeout: timeout,
		broker:  NewEventBroker(),
	}
}

// Broker returns the engine's event broker for SSE subscription.
func (e *Engine) Broker() *EventBroker {
	return e.broker
}

// Wait blocks until all in-flight run goroutines complete.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Submit creates a run record and launches the walk in a goroutine.
// The run is stored with status "pending" before returning.
func (e *Engine) Submit(ctx context.Context, req SubmitRequest) (*model.Run, error) {
	if strings.TrimSpace(req.RawMessage) == "" {
		return nil, fmt.Errorf("raw_message is required")
	}

	state := &RunState{
		Request: model.TeacherRequest{RawMessage: req.RawMessage},
		Node:    NodeProfile,
	}
	blob, err := state.Marshal()
	if err != nil {
		return nil, err
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = model.NewSessionID()
	}
	language := req.Language
	if language == "" {
		language = "English"
	}

	run := &model.Run{
		ID:           model.NewID(),
		SessionID:    sessionID,
		Status:       model.StatusPending,
		Stage:        model.StageProfiling,
		Language:     language,
		ClassProfile: req.ClassProfile,
		State:        blob,
		CreatedAt:    time.Now().UTC(),
	}
	if err := e.store.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}

	e.wg.Go(func() {
		e.execute(run.ID)
	})

	return run, nil
}

// Resume applies teacher input to a parked run and continues the walk.
func (e *Engine) Resume(ctx context.Context, runID string, input Input) (*model.Run, error) {
	run, err := e.store.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run.Status != model.StatusAwaitingInput {
		return nil, ErrNotAwaiting
	}
	if input.Kind != run.AwaitingInput {
		return nil, fmt.Errorf("run awaits %q input, got %q", run.AwaitingInput, input.Kind)
	}

	state, err := UnmarshalState(run.State)
	if err != nil {
		return nil, err
	}
	if err := applyInput(state, input); err != nil {
		return nil, err
	}

	run.AwaitingInput = ""
	run.Status = model.StatusRunning
	run.State, err = state.Marshal()
	if err != nil {
		return nil, err
	}
	if err := e.store.UpdateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("resume run: %w", err)
	}

	e.wg.Go(func() {
		e.walkSegment(run.ID)
	})

	return run, nil
}

// Cancel aborts a run that has not reached a terminal status.
func (e *Engine) Cancel(ctx context.Context, runID string) error {
	run, err := e.store.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if !model.ValidTransition(run.Status, model.StatusCancelled) {
		return fmt.Errorf("%w: %s -> %s", store.ErrInvalidTransition, run.Status, model.StatusCancelled)
	}
	if err := e.store.UpdateRunStatus(ctx, runID, model.StatusCancelled); err != nil {
		return err
	}
	e.broker.Close(runID)
	return nil
}

// applyInput folds teacher input into the run state and sets the next
// node.
func applyInput(s *RunState, input Input) error {
	switch input.Kind {
	case model.InputProfileDetails:
		if strings.TrimSpace(input.Message) == "" {
			return fmt.Errorf("profile details message is required")
		}
		s.Profile.Clarifications = append(s.Profile.Clarifications, input.Message)
		s.Node = NodeProfile

	case model.InputDesignFeedback:
		if strings.TrimSpace(input.Message) == "" {
			return fmt.Errorf("design feedback message is required")
		}
		s.Design.Feedback = append(s.Design.Feedback, input.Message)
		if s.Profile.Data != nil {
			s.Profile.Data.ImplicitGoals = append(s.Profile.Data.ImplicitGoals, input.Message)
		}
		// Restart the design phase.
		s.Design.Standards = nil
		s.Design.Knowledge = nil
		s.Design.Valid = false
		s.Node = NodeStandards

	case model.InputOptionSelection:
		if s.Design.Options == nil {
			return fmt.Errorf("no options to select from")
		}
		if input.Selection == nil {
			// A message without a selection asks for fresh options. The
			// message feeds the design context so the regenerated
			// options reflect it.
			if strings.TrimSpace(input.Message) == "" {
				return fmt.Errorf("selection or a regeneration message is required")
			}
			s.Design.Feedback = append(s.Design.Feedback, input.Message)
			if s.Profile.Data != nil {
				s.Profile.Data.ImplicitGoals = append(s.Profile.Data.ImplicitGoals, input.Message)
			}
			s.Design.Options.SelectionComplete = false
			s.Design.Options.UserSelectedOption = nil
			s.Node = routeAfterSelection(s)
			return nil
		}
		sel := *input.Selection
		if sel < 0 || sel >= len(s.Design.Options.ProjectOptions) {
			return fmt.Errorf("selection %d out of range [0,%d)", sel, len(s.Design.Options.ProjectOptions))
		}
		s.Design.Options.UserSelectedOption = &sel
		s.Design.Options.SelectionComplete = true
		s.Design.Options.SelectedTemplate = s.Design.Options.ProjectOptions[sel].TemplateID
		s.Node = routeAfterSelection(s)

	case model.InputCurriculumReview, model.InputAssessmentReview, model.InputResourcesReview:
		kind := componentKindForInput(input.Kind)
		cs := s.Development.Component(kind)
		if cs == nil || cs.Plan == nil {
			return fmt.Errorf("no %s plan under review", kind)
		}
		if input.Approved {
			cs.Approved = true
			cs.Feedback = ""
			s.Node = routeAfterDevelopment(s)
			return nil
		}
		feedback := input.Feedback
		if feedback == "" {
			feedback = input.Message
		}
		if strings.TrimSpace(feedback) == "" {
			return fmt.Errorf("rejection requires feedback")
		}
		cs.Feedback = feedback
		s.Node = NodeDevelopment

	case model.InputFinalReview:
		if s.Final.Unit == nil {
			return fmt.Errorf("no assembled unit under review")
		}
		if input.Approved {
			s.Final.Approved = true
			s.Node = NodeDone
			return nil
		}
		feedback := input.Feedback
		if feedback == "" {
			feedback = input.Message
		}
		s.Final.Feedback = feedback
		s.Node = routeFinalDecision(input.RevisionType)
		if input.RevisionType == model.RevisionSelection {
			// Unwind to the option choice; development restarts for the
			// new selection.
			s.Development = DevelopmentState{}
			s.Final.Unit = nil
			if s.Design.Options != nil {
				s.Design.Options.SelectionComplete = false
				s.Design.Options.UserSelectedOption = nil
			}
		}

	default:
		return fmt.Errorf("unknown input kind %q", input.Kind)
	}
	return nil
}

// execute starts a pending run: pending→running, then the first walk
// segment.
func (e *Engine) execute(runID string) {
	run, err := e.store.GetRun(context.Background(), runID)
	if err != nil {
		e.logger.Error("failed to load submitted run", "run_id", runID, "error", err)
		return
	}

	now := time.Now().UTC()
	run.Status = model.StatusRunning
	run.StartedAt = &now
	if err := e.store.UpdateRun(context.Background(), run); err != nil {
		e.logger.Error("failed to transition to running", "run_id", runID, "error", err)
		e.finishFailed(runID, fmt.Sprintf("failed to start: %v", err))
		return
	}

	e.walkSegment(runID)
}

// walkSegment walks the graph from the run's current node until it
// parks on input, finishes, or fails. Each segment gets its own
// timeout.
func (e *Engine) walkSegment(runID string) {
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	run, err := e.store.GetRun(ctx, runID)
	if err != nil {
		e.logger.Error("failed to load run", "run_id", runID, "error", err)
		return
	}
	if run.Status == model.StatusCancelled {
		return
	}
	state, err := UnmarshalState(run.State)
	if err != nil {
		e.finishFailed(runID, err.Error())
		return
	}

	for {
		if ctx.Err() != nil {
			e.finishFailed(runID, fmt.Sprintf("run timed out after %s", e.timeout))
			return
		}

		var nodeErr error
		switch state.Node {
		case NodeProfile:
			nodeErr = e.runProfile(ctx, run, state)
		case NodeStandards:
			e.runStandards(ctx, run, state)
		case NodeKnowledge:
			e.runKnowledge(ctx, run, state)
		case NodeValidateDesign:
			e.runValidation(ctx, run, state)
		case NodeDesignOptions:
			e.runDesignOptions(ctx, run, state)
		case NodeDevelopment:
			nodeErr = e.runDevelopment(ctx, run, state)
		case NodeAssembly:
			nodeErr = e.runAssembly(ctx, run, state)

		case NodeAwaitProfileInput, NodeAwaitDesignInput, NodeAwaitSelection,
			NodeAwaitReview, NodeAwaitFinalReview:
			e.park(ctx, run, state)
			return

		case NodeDone:
			e.finishCompleted(ctx, run, state)
			return

		default:
			nodeErr = fmt.Errorf("unknown graph node %q", state.Node)
		}

		if nodeErr != nil {
			e.event(ctx, run, state, state.Node, nodeErr.Error())
			e.finishFailed(run.ID, nodeErr.Error())
			return
		}

		if err := e.persist(ctx, run, state); err != nil {
			if errors.Is(err, store.ErrRunFinished) {
				// The run was cancelled while the node executed; the
				// terminal status wins and the walk stops here.
				e.logger.Info("run finished during node execution", "run_id", run.ID, "node", state.Node)
				return
			}
			e.logger.Error("failed to persist run state", "run_id", run.ID, "error", err)
			e.finishFailed(run.ID, fmt.Sprintf("persist state: %v", err))
			return
		}
	}
}

func (e *Engine) runProfile(ctx context.Context, run *model.Run, s *RunState) error {
	run.Stage = model.StageProfiling

	raw := s.Request.RawMessage
	if len(s.Profile.Clarifications) > 0 {
		raw = raw + "\n\nAdditional details from the teacher:\n" + strings.Join(s.Profile.Clarifications, "\n")
	}

	profile, err := e.agents.Profiler.CreateProfile(ctx, model.TeacherRequest{RawMessage: raw})
	if err != nil {
		return fmt.Errorf("profiling: %w", err)
	}

	// Later passes overlay the earlier profile so details the teacher
	// already gave are not lost.
	if s.Profile.Data != nil {
		merged := s.Profile.Data.Merge(profile)
		profile = &merged
	}
	s.Profile.Data = profile
	s.Profile.Complete = profile.Complete()

	if s.Profile.Complete {
		e.event(ctx, run, s, NodeProfile, fmt.Sprintf("profile created for %q (grade %s)", profile.Topic, profile.GradeLevel))
	} else {
		// The ask is teacher-facing: it streams to the client in the
		// run's language.
		ask := locale.Presetf("provide_missing_slots", run.Language,
			"slots", strings.Join(profile.MissingDetails(), ", "))
		e.event(ctx, run, s, NodeProfile, ask)
	}
	s.Node = routeAfterProfile(s)
	return nil
}

func (e *Engine) runStandards(ctx context.Context, run *model.Run, s *RunState) {
	run.Stage = model.StageStandards

	alignment, err := e.agents.Aligner.Align(ctx, s.Profile.Data)
	if err != nil {
		// The aligner degrades to the fallback alignment; the run
		// continues and validation decides whether to ask for help.
		e.event(ctx, run, s, NodeStandards, fmt.Sprintf("standards alignment degraded: %v", err))
	}
	s.Design.Standards = alignment
	e.event(ctx, run, s, NodeStandards, fmt.Sprintf("aligned %d standard(s)", len(alignment.Standards)))
	s.Node = NodeKnowledge
}

func (e *Engine) runKnowledge(ctx context.Context, run *model.Run, s *RunState) {
	run.Stage = model.StageKnowledge

	kg, err := e.agents.Enricher.Enrich(ctx, s.Design.Standards, "")
	if err != nil {
		e.event(ctx, run, s, NodeKnowledge, fmt.Sprintf("knowledge graph degraded: %v", err))
	}
	s.Design.Knowledge = kg
	e.event(ctx, run, s, NodeKnowledge, fmt.Sprintf("analyzed standard %s (confidence %.2f)", kg.StandardCode, kg.RelevanceConfidence))
	s.Node = NodeValidateDesign
}

func (e *Engine) runValidation(ctx context.Context, run *model.Run, s *RunState) {
	primary := s.Design.Standards.PrimaryStandard()
	s.Design.Valid = primary != nil &&
		primary.Code != model.FallbackStandardCode &&
		s.Design.Knowledge != nil &&
		s.Design.Knowledge.RelevanceConfidence > 0

	if s.Design.Valid {
		e.event(ctx, run, s, NodeValidateDesign, "design context validated")
	} else {
		e.event(ctx, run, s, NodeValidateDesign, "design context invalid, teacher guidance needed")
	}
	s.Node = routeAfterValidation(s)
}

func (e *Engine) runDesignOptions(ctx context.Context, run *model.Run, s *RunState) {
	run.Stage = model.StageDesignOptions

	result, err := e.agents.Designer.Design(ctx, s.DesignContext(run.ClassProfile))
	if err != nil {
		e.event(ctx, run, s, NodeDesignOptions, fmt.Sprintf("option generation degraded: %v", err))
	}
	s.Design.Options = result
	e.event(ctx, run, s, NodeDesignOptions, fmt.Sprintf("generated %d design option(s)", len(result.ProjectOptions)))

	run.Stage = model.StageSelection
	s.Node = NodeAwaitSelection
}

func (e *Engine) runDevelopment(ctx context.Context, run *model.Run, s *RunState) error {
	run.Stage = model.StageDevelopment
	opt := s.SelectedOption()
	if opt == nil {
		return fmt.Errorf("development started without a selected option")
	}
	dc := s.DesignContext(run.ClassProfile)

	// Develop every component that has no plan yet or was sent back
	// with reviewer feedback, in parallel.
	kinds := []string{model.ComponentCurriculum, model.ComponentAssessment, model.ComponentResources}
	g, gctx := errgroup.WithContext(ctx)
	for _, kind := range kinds {
		cs := s.Development.Component(kind)
		if cs.Approved || (cs.Plan != nil && cs.Feedback == "") {
			continue
		}
		g.Go(func() error {
			plan, err := e.agents.Developer.Develop(gctx, kind, dc, opt, cs.Feedback)
			if err != nil {
				e.logger.Warn("component development degraded", "run_id", run.ID, "kind", kind, "error", err)
			}
			if cs.Feedback != "" {
				cs.Revisions++
				plan.Revision = cs.Revisions
			}
			cs.Plan = plan
			cs.Feedback = ""
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("development: %w", err)
	}

	e.event(ctx, run, s, NodeDevelopment, "component plans ready for review")
	s.Node = routeAfterDevelopment(s)
	return nil
}

func (e *Engine) runAssembly(ctx context.Context, run *model.Run, s *RunState) error {
	run.Stage = model.StageFinalAssembly
	opt := s.SelectedOption()
	if opt == nil {
		return fmt.Errorf("assembly started without a selected option")
	}

	unit, err := e.agents.Assembler.Assemble(ctx, opt,
		s.Development.Curriculum.Plan,
		s.Development.Assessment.Plan,
		s.Development.Resources.Plan,
		s.Final.Feedback,
	)
	if err != nil {
		e.event(ctx, run, s, NodeAssembly, fmt.Sprintf("assembly degraded: %v", err))
	}
	if s.Final.Feedback != "" {
		s.Final.RevisionHistory = append(s.Final.RevisionHistory, s.Final.Feedback)
		s.Final.Feedback = ""
	}
	unit.RevisionHistory = s.Final.RevisionHistory
	s.Final.Unit = unit

	e.event(ctx, run, s, NodeAssembly, fmt.Sprintf("assembled unit %q", unit.Title))
	s.Node = NodeAwaitFinalReview
	return nil
}

// park stores the run as awaiting_input with the awaited kind.
func (e *Engine) park(ctx context.Context, run *model.Run, s *RunState) {
	kind := awaitedInput(s.Node, s)
	run.Status = model.StatusAwaitingInput
	run.AwaitingInput = kind
	e.event(ctx, run, s, s.Node, fmt.Sprintf("awaiting %s", kind))
	if err := e.persist(ctx, run, s); err != nil {
		if errors.Is(err, store.ErrRunFinished) {
			e.logger.Info("run finished before parking", "run_id", run.ID, "node", s.Node)
			return
		}
		e.logger.Error("failed to park run", "run_id", run.ID, "error", err)
		e.finishFailed(run.ID, fmt.Sprintf("park run: %v", err))
	}
}

func (e *Engine) finishCompleted(ctx context.Context, run *model.Run, s *RunState) {
	now := time.Now().UTC()
	run.Status = model.StatusCompleted
	run.FinishedAt = &now
	if run.StartedAt != nil {
		dur := int(now.Sub(*run.StartedAt).Milliseconds())
		run.DurationMS = &dur
	}
	e.event(ctx, run, s, NodeDone, "run completed")
	if err := e.persist(ctx, run, s); err != nil && !errors.Is(err, store.ErrRunFinished) {
		e.logger.Error("failed to complete run", "run_id", run.ID, "error", err)
	}
	e.broker.Close(run.ID)
}

// finishFailed marks a run as failed with the given error message.
func (e *Engine) finishFailed(id, errMsg string) {
	ctx := context.Background()
	run, err := e.store.GetRun(ctx, id)
	if err != nil {
		e.logger.Error("failed to load run for failure", "run_id", id, "error", err)
		return
	}

	now := time.Now().UTC()
	run.Status = model.StatusFailed
	run.Error = errMsg
	run.AwaitingInput = ""
	run.FinishedAt = &now
	if run.StartedAt != nil {
		dur := int(now.Sub(*run.StartedAt).Milliseconds())
		run.DurationMS = &dur
	}
	if err := e.store.UpdateRun(ctx, run); err != nil && !errors.Is(err, store.ErrRunFinished) {
		e.logger.Error("failed to update failed run", "run_id", id, "error", err)
	}
	e.broker.Close(id)
}

// persist writes the serialized state and run through the store.
func (e *Engine) persist(ctx context.Context, run *model.Run, s *RunState) error {
	blob, err := s.Marshal()
	if err != nil {
		return err
	}
	run.State = blob
	return e.store.UpdateRun(ctx, run)
}

// event appends one timeline entry and publishes it to subscribers.
func (e *Engine) event(ctx context.Context, run *model.Run, s *RunState, node, message string) {
	seq := s.EventSeq
	s.EventSeq++
	if err := e.store.AppendEvent(ctx, run.ID, seq, node, message); err != nil {
		e.logger.Error("failed to append run event", "run_id", run.ID, "seq", seq, "error", err)
	}
	e.broker.Publish(run.ID, message)
}
