package core

import "time"

// Status tracks the lifecycle of a Task or SubTask. A status only ever moves
// forward: pending -> running -> completed or failed. Nothing regresses.
type Status string

const (
	// StatusPending means work has been declared but not started.
	StatusPending Status = "pending"
	// StatusRunning means work is in progress.
	StatusRunning Status = "running"
	// StatusCompleted means work finished and produced a result.
	StatusCompleted Status = "completed"
	// StatusFailed means work ended with a contained failure.
	StatusFailed Status = "failed"
)

// Strategy selects how a Task's sub-tasks are executed and combined.
type Strategy string

const (
	// StrategySequential runs sub-tasks in priority order, feeding each the
	// previous sub-task's result.
	StrategySequential Strategy = "sequential"
	// StrategyParallel runs all sub-tasks concurrently and merges the results.
	StrategyParallel Strategy = "parallel"
	// StrategyConsensus asks every specialist the original question and
	// collects all answers.
	StrategyConsensus Strategy = "consensus"
	// StrategyIterative alternates a producer and a reviewer until approval.
	StrategyIterative Strategy = "iterative"
	// StrategyAuto defers the choice to the orchestrator.
	StrategyAuto Strategy = "auto"
)

// Valid reports whether s names a known strategy.
func (s Strategy) Valid() bool {
	switch s {
	case StrategySequential, StrategyParallel, StrategyConsensus, StrategyIterative, StrategyAuto:
		return true
	}
	return false
}

// SubTask is one unit of delegated work inside a Task, bound to exactly one
// specialist role. The pipeline engine mutates it in place while executing;
// nothing else writes to it.
//
// DependsOn is declared by the orchestrator but not enforced as a DAG:
// priority is the only real ordering signal. The field is carried through
// serialization untouched.
type SubTask struct {
	ID            string   `json:"id"`
	Description   string   `json:"description"`
	AssignedAgent Role     `json:"assigned_agent"`
	Priority      int      `json:"priority"`
	DependsOn     []string `json:"depends_on,omitempty"`
	Skills        []string `json:"skills,omitempty"`
	Status        Status   `json:"status"`
	Result        string   `json:"result,omitempty"`
	TokenUsage    int      `json:"token_usage"`
	LatencyMS     float64  `json:"latency_ms"`
}

// NewSubTask creates a pending sub-task with a fresh id.
func NewSubTask(description string, agent Role) *SubTask {
	return &SubTask{
		ID:            NewID(),
		Description:   description,
		AssignedAgent: agent,
		Priority:      1,
		Status:        StatusPending,
	}
}

// Task is one user request's execution record: the chosen strategy, the
// ordered sub-tasks, and aggregate counters. Tasks are created by the
// orchestrator's decomposition, mutated only by the pipeline engine, and
// appended to the Thread, never deleted.
type Task struct {
	ID             string     `json:"id"`
	UserInput      string     `json:"user_input"`
	Strategy       Strategy   `json:"strategy"`
	SubTasks       []*SubTask `json:"sub_tasks"`
	Status         Status     `json:"status"`
	FinalResult    string     `json:"final_result,omitempty"`
	TotalTokens    int        `json:"total_tokens"`
	TotalLatencyMS float64    `json:"total_latency_ms"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// NewTask creates a pending task for the given user input.
func NewTask(userInput string, strategy Strategy, subTasks []*SubTask) *Task {
	return &Task{
		ID:        NewID(),
		UserInput: userInput,
		Strategy:  strategy,
		SubTasks:  subTasks,
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}
}
