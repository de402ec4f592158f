package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/wellplan/internal/contract"
	"github.com/alexanderramin/wellplan/internal/domain"
	"github.com/alexanderramin/wellplan/internal/lifequality"
	"github.com/alexanderramin/wellplan/internal/llm"
	"github.com/alexanderramin/wellplan/internal/planner"
	"github.com/alexanderramin/wellplan/internal/repository"
	"github.com/alexanderramin/wellplan/internal/retrieval"
	"github.com/alexanderramin/wellplan/internal/service"
	"github.com/alexanderramin/wellplan/internal/signals"
	"github.com/alexanderramin/wellplan/internal/teatest"
	"github.com/alexanderramin/wellplan/internal/testutil"
)

// testApp wires a full App backed by an in-memory DB and the rule-based generator.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	index, err := retrieval.NewIndex(context.Background(), testutil.NewTestCorpus(), retrieval.NewTFIDFVectorizer(), nil)
	require.NoError(t, err)

	sessions := repository.NewSQLSessionRepo(database)
	steps := repository.NewSQLStepRepo(database)
	metrics := repository.NewSQLMetricsRepo(database)
	lq := repository.NewSQLLifeQualityRepo(database)

	return &App{
		Plan: service.NewPlanService(service.PlanDeps{
			Extractor:   signals.NewExtractor(signals.NewLexiconBackend()),
			Ranker:      retrieval.NewRanker(index),
			Assembler:   planner.NewAssembler(llm.NewGenerator(llm.NewRuleBasedClient(nil), "rule"), nil),
			LifeQuality: lifequality.NewEngine(lq, nil),
			Steps:       steps,
			Plans:       repository.NewSQLPlanRepo(database),
			UoW:         testutil.NewTestUoW(database),
		}),
		History: service.NewHistoryService(sessions, steps, metrics, lq, nil),
		Now:     func() time.Time { return time.Now().Add(time.Minute) },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

const checkinText = "Work stress has been piling up and I can't sleep."

func TestPlanCmd_PrintsPlan(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "plan", "--user", "u1", "-m", checkinText)
	require.NoError(t, err)
	assert.Contains(t, out, "PLAN FOR")
	assert.Contains(t, out, "LIFE QUALITY")
	assert.Contains(t, out, "session")
}

func TestPlanCmd_JSON(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "plan", "--user", "u1", "--minutes", "20",
		"-m", "Work stress has been piling up.", "-m", "I can't sleep either.", "--json")
	require.NoError(t, err)

	var resp contract.PlanResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.NotEmpty(t, resp.SessionID)
	assert.NotEmpty(t, resp.EmpatheticMessage)
	assert.LessOrEqual(t, resp.Plan.TotalMinutes(), 20)
	assert.Contains(t, resp.Signals.Themes, "stress")
	require.NotNil(t, resp.LifeQuality)
}

func TestPlanCmd_Errors(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "plan", "-m", checkinText)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user")

	_, err = executeCmd(t, app, "plan", "--user", "u1")
	assert.ErrorIs(t, err, errNoMessage)

	_, err = executeCmd(t, app, "plan", "--user", "u1", "-m", "   ")
	assert.ErrorIs(t, err, errNoMessage)

	_, err = executeCmd(t, app, "plan", "--user", "u1", "--minutes", "999", "-m", checkinText)
	assert.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestHistoryCmd(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "history", "--user", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, "No check-ins recorded for u1 yet.")

	for range 2 {
		_, err = executeCmd(t, app, "plan", "--user", "u1", "-m", checkinText)
		require.NoError(t, err)
	}

	out, err = executeCmd(t, app, "history", "--user", "u1", "--json")
	require.NoError(t, err)
	var resp contract.HistoryResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Len(t, resp.Snapshots, 2)
	require.NotNil(t, resp.Metrics)
	assert.Equal(t, 2, resp.Metrics.TotalSessions)

	out, err = executeCmd(t, app, "history", "--user", "u1", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "HISTORY")
	assert.Contains(t, out, "sessions 2")
}

func TestStepsCmd(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "steps")
	require.Error(t, err)

	_, err = executeCmd(t, app, "steps", "--user", "u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	out, err := executeCmd(t, app, "plan", "--user", "u1", "-m", checkinText, "--json")
	require.NoError(t, err)
	var resp contract.PlanResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	out, err = executeCmd(t, app, "steps", "--user", "u1")
	require.NoError(t, err)
	assert.Contains(t, out, resp.SessionID)
	for _, name := range []string{"reflection", "user_metrics", "retrieval", "plan", "empathy", "life_quality"} {
		assert.Contains(t, out, name)
	}

	out, err = executeCmd(t, app, "steps", resp.SessionID, "--json")
	require.NoError(t, err)
	var log contract.RunLog
	require.NoError(t, json.Unmarshal([]byte(out), &log))
	assert.Equal(t, "u1", log.UserID)
	assert.Len(t, log.Steps, 6)

	_, err = executeCmd(t, app, "steps", "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCheckinCmd_RequiresTerminal(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "checkin")
	assert.ErrorIs(t, err, errNotInteractive)
}

func TestCheckinValues_Options(t *testing.T) {
	opts, err := checkinValues{user: " u1 ", minutes: "25", mood: " tired ", message: "long day"}.options()
	require.NoError(t, err)
	assert.Equal(t, "u1", opts.user)
	assert.Equal(t, 25, opts.minutes)
	assert.Equal(t, "tired", opts.mood)

	req, err := opts.request()
	require.NoError(t, err)
	assert.Equal(t, "long day", req.Conversation[0].Content)

	opts, err = checkinValues{user: "u1", message: "hi"}.options()
	require.NoError(t, err)
	assert.Zero(t, opts.minutes)

	_, err = checkinValues{user: "u1", minutes: "soon", message: "hi"}.options()
	assert.Error(t, err)
}

func TestCheckinValidators(t *testing.T) {
	assert.NoError(t, validateMinutes(""))
	assert.NoError(t, validateMinutes("30"))
	assert.Error(t, validateMinutes("0"))
	assert.Error(t, validateMinutes("481"))
	assert.Error(t, validateMinutes("ten"))

	required := validateRequired("a user id")
	assert.NoError(t, required("u1"))
	assert.EqualError(t, required("  "), "enter a user id")

	assert.NotNil(t, checkinForm(&checkinValues{}))
}

func TestWithSpinner_NonInteractiveRunsTaskInline(t *testing.T) {
	app := &App{IsInteractive: func() bool { return false }}
	ran := false
	err := withSpinner(context.Background(), app, new(bytes.Buffer), "working", func(context.Context) error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)
}

func TestSpinnerModel_QuitsWhenTaskDone(t *testing.T) {
	d := teatest.New(t, newSpinnerModel("working"))
	d.DrainInit()
	assert.Contains(t, d.View(), "working")

	d.Send(taskDoneMsg{})
	assert.True(t, d.Quitting)
	assert.Empty(t, d.View())
}

func TestSpinnerModel_CtrlCInterrupts(t *testing.T) {
	d := teatest.New(t, newSpinnerModel("working"))
	d.DrainInit()

	d.PressCtrlC()
	assert.True(t, d.Quitting)
	assert.True(t, d.Model.(spinnerModel).interrupted)
}
