// Package core contains the shared data model of the agent system: the
// append-only event log (Thread), task decomposition records (Task, SubTask),
// per-agent metrics and the context window builder used to render thread
// history into model prompts. Storage and retrieval interfaces implemented by
// the skill, memory and session packages live here as well so higher layers
// depend only on core.
package core
