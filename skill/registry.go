// Package skill provides the built-in skill registry: a static catalog of
// instructional protocols that agents discover by keyword relevance and
// inject into their context.
package skill

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/hupe1980/agentcrew/core"
)

type entry struct {
	skill     core.Skill
	keywords  []string
	knowledge string
}

// Registry is an in-memory skill catalog implementing core.SkillStore. The
// catalog is fixed at construction; lookups are read-only and safe for
// concurrent use.
type Registry struct {
	entries []entry
}

// NewRegistry creates a registry with the built-in skill set.
func NewRegistry() *Registry {
	return &Registry{entries: builtinSkills()}
}

// Find implements core.SkillStore. Skills are scored by keyword matches
// against the query, with smaller bonuses for name and description overlap;
// only positive scores are returned, best first.
func (r *Registry) Find(query string, maxResults int) []core.Skill {
	if maxResults <= 0 {
		maxResults = 3
	}
	queryLower := strings.ToLower(query)
	queryWords := strings.Fields(queryLower)

	type scored struct {
		score float64
		skill core.Skill
	}
	var matches []scored

	for _, e := range r.entries {
		score := 0.0
		for _, kw := range e.keywords {
			kwLower := strings.ToLower(kw)
			if strings.Contains(queryLower, kwLower) {
				score += 3.0
			} else if anyWordIn(queryWords, kwLower) {
				score += 1.5
			}
		}
		if anyWordIn(queryWords, strings.ToLower(e.skill.Name)) {
			score += 2.0
		}
		if anyWordIn(queryWords, strings.ToLower(e.skill.Description)) {
			score += 1.0
		}
		if score > 0 {
			s := e.skill
			s.Relevance = math.Round(score*10) / 10
			matches = append(matches, scored{score: score, skill: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })

	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	out := make([]core.Skill, len(matches))
	for i, m := range matches {
		out[i] = m.skill
	}
	return out
}

// Knowledge implements core.SkillStore.
func (r *Registry) Knowledge(id string) (string, bool) {
	for _, e := range r.entries {
		if e.skill.ID == id {
			return e.knowledge, true
		}
	}
	return "", false
}

func anyWordIn(words []string, s string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// FormatFindResults renders skill search results for model context.
func FormatFindResults(skills []core.Skill) string {
	if len(skills) == 0 {
		return "<skills>\n  No matching skills found.\n</skills>"
	}
	var lines []string
	for _, s := range skills {
		lines = append(lines, fmt.Sprintf("  [%s] %s (%s)\n      %s\n      Relevance: %v",
			s.ID, s.Name, s.Category, s.Description, s.Relevance))
	}
	return "<available_skills>\n" + strings.Join(lines, "\n") + "\n</available_skills>"
}

// FormatKnowledge renders skill knowledge for injection into agent context.
func FormatKnowledge(id, knowledge string) string {
	return fmt.Sprintf("<skill id=%q>\n%s\n</skill>", id, knowledge)
}

func builtinSkills() []entry {
	return []entry{
		{
			skill: core.Skill{
				ID:          "deep-research",
				Name:        "Deep Research",
				Category:    "research",
				Description: "Multi-source deep research with cross-referencing and fact verification",
			},
			keywords: []string{"research", "investigate", "deep dive", "analysis", "report"},
			knowledge: "DEEP RESEARCH PROTOCOL:\n" +
				"1. Break the topic into 3-5 sub-questions\n" +
				"2. Search each sub-question independently\n" +
				"3. Cross-reference findings across sources\n" +
				"4. Identify contradictions and verify with additional searches\n" +
				"5. Synthesize into structured report with citations\n" +
				"6. Rate confidence per claim (high/medium/low)\n" +
				"Always prefer primary sources over secondary. Date-stamp all findings.",
		},
		{
			skill: core.Skill{
				ID:          "code-generation",
				Name:        "Code Generation",
				Category:    "coding",
				Description: "Production-quality code generation with best practices",
			},
			keywords: []string{"code", "program", "function", "class", "implement"},
			knowledge: "CODE GENERATION PROTOCOL:\n" +
				"1. Understand requirements fully before writing\n" +
				"2. Choose appropriate design patterns\n" +
				"3. Write type-safe code with proper error handling\n" +
				"4. Include docstrings and inline comments for complex logic\n" +
				"5. Follow SOLID principles\n" +
				"6. Consider edge cases and input validation\n" +
				"7. Suggest tests for critical paths",
		},
		{
			skill: core.Skill{
				ID:          "data-analysis",
				Name:        "Data Analysis",
				Category:    "analysis",
				Description: "Statistical analysis, data interpretation, and visualization recommendations",
			},
			keywords: []string{"data", "statistics", "analyze", "chart", "graph", "trend"},
			knowledge: "DATA ANALYSIS PROTOCOL:\n" +
				"1. Identify data type (time-series, categorical, numerical)\n" +
				"2. Check for missing values, outliers, distributions\n" +
				"3. Apply appropriate statistical methods\n" +
				"4. Visualize with the right chart type\n" +
				"5. State assumptions and limitations\n" +
				"6. Provide actionable insights, not just numbers",
		},
		{
			skill: core.Skill{
				ID:          "math-reasoning",
				Name:        "Mathematical Reasoning",
				Category:    "reasoning",
				Description: "Step-by-step mathematical problem solving and proof construction",
			},
			keywords: []string{"math", "calculate", "equation", "proof", "formula"},
			knowledge: "MATH REASONING PROTOCOL:\n" +
				"1. Identify the problem type (algebra, calculus, probability, etc.)\n" +
				"2. State given information and what needs to be found\n" +
				"3. Show every step without skipping\n" +
				"4. Verify answer by substitution or alternative method\n" +
				"5. Express answer with appropriate precision\n" +
				"6. Explain the intuition behind the solution",
		},
		{
			skill: core.Skill{
				ID:          "creative-writing",
				Name:        "Creative Writing",
				Category:    "writing",
				Description: "High-quality content creation, copywriting, and text composition",
			},
			keywords: []string{"write", "essay", "article", "blog", "content", "copy"},
			knowledge: "CREATIVE WRITING PROTOCOL:\n" +
				"1. Understand audience and purpose\n" +
				"2. Create compelling hook/opening\n" +
				"3. Structure with clear flow (intro, body, conclusion)\n" +
				"4. Use active voice, concrete examples\n" +
				"5. Vary sentence length for rhythm\n" +
				"6. Edit for clarity and conciseness\n" +
				"7. Match tone to context (formal/casual/technical)",
		},
		{
			skill: core.Skill{
				ID:          "debugging",
				Name:        "Debugging & Troubleshooting",
				Category:    "coding",
				Description: "Systematic bug finding, root cause analysis, and fix verification",
			},
			keywords: []string{"bug", "error", "fix", "debug", "crash", "issue"},
			knowledge: "DEBUGGING PROTOCOL:\n" +
				"1. Reproduce the issue and get the exact error message\n" +
				"2. Isolate: narrow down to smallest failing case\n" +
				"3. Form hypothesis about root cause\n" +
				"4. Verify hypothesis with targeted investigation\n" +
				"5. Implement minimal fix\n" +
				"6. Verify fix doesn't break other things\n" +
				"7. Document what caused it and how to prevent recurrence",
		},
		{
			skill: core.Skill{
				ID:          "comparison",
				Name:        "Comparison & Evaluation",
				Category:    "analysis",
				Description: "Structured comparison of options, technologies, or approaches",
			},
			keywords: []string{"compare", "vs", "versus", "which", "better"},
			knowledge: "COMPARISON PROTOCOL:\n" +
				"1. Define evaluation criteria upfront\n" +
				"2. Research each option independently\n" +
				"3. Create structured comparison matrix\n" +
				"4. Weight criteria by importance to the use case\n" +
				"5. Provide clear recommendation with reasoning\n" +
				"6. Note trade-offs and context-dependent factors",
		},
		{
			skill: core.Skill{
				ID:          "summarization",
				Name:        "Summarization",
				Category:    "writing",
				Description: "Concise summarization of long content while preserving key information",
			},
			keywords: []string{"summarize", "summary", "tldr", "brief", "overview"},
			knowledge: "SUMMARIZATION PROTOCOL:\n" +
				"1. Read/analyze the full content first\n" +
				"2. Identify key themes and main arguments\n" +
				"3. Extract critical facts, numbers, and conclusions\n" +
				"4. Structure: main point, supporting details, implications\n" +
				"5. Keep summary to ~20% of original length\n" +
				"6. Preserve nuance without oversimplifying",
		},
		{
			skill: core.Skill{
				ID:          "translation",
				Name:        "Translation & Localization",
				Category:    "language",
				Description: "Accurate translation with cultural context and localization",
			},
			keywords: []string{"translate", "translation", "language"},
			knowledge: "TRANSLATION PROTOCOL:\n" +
				"1. Understand source text meaning and intent\n" +
				"2. Translate meaning, not word-by-word\n" +
				"3. Adapt idioms and cultural references\n" +
				"4. Maintain tone and register of original\n" +
				"5. Handle technical terms consistently\n" +
				"6. Flag ambiguous passages",
		},
		{
			skill: core.Skill{
				ID:          "security-review",
				Name:        "Security Review",
				Category:    "security",
				Description: "Security analysis, vulnerability assessment, and hardening recommendations",
			},
			keywords: []string{"security", "vulnerability", "attack", "protect"},
			knowledge: "SECURITY REVIEW PROTOCOL:\n" +
				"1. Identify attack surface and threat model\n" +
				"2. Check OWASP Top 10 vulnerabilities\n" +
				"3. Review authentication and authorization\n" +
				"4. Check input validation and output encoding\n" +
				"5. Assess data protection (encryption, storage)\n" +
				"6. Review dependency vulnerabilities\n" +
				"7. Provide prioritized remediation plan",
		},
		{
			skill: core.Skill{
				ID:          "architecture-design",
				Name:        "Architecture Design",
				Category:    "architecture",
				Description: "System architecture design, patterns, and scalability planning",
			},
			keywords: []string{"architecture", "design", "system", "scale", "pattern"},
			knowledge: "ARCHITECTURE DESIGN PROTOCOL:\n" +
				"1. Clarify requirements (functional + non-functional)\n" +
				"2. Identify key quality attributes (performance, scalability, security)\n" +
				"3. Select appropriate architectural patterns\n" +
				"4. Define component boundaries and interfaces\n" +
				"5. Plan for failure modes and recovery\n" +
				"6. Document decisions with rationale (ADRs)\n" +
				"7. Consider operational concerns (monitoring, deployment)",
		},
		{
			skill: core.Skill{
				ID:          "performance-optimization",
				Name:        "Performance Optimization",
				Category:    "performance",
				Description: "Performance profiling, bottleneck identification, and optimization",
			},
			keywords: []string{"performance", "optimize", "slow", "fast", "speed"},
			knowledge: "PERFORMANCE OPTIMIZATION PROTOCOL:\n" +
				"1. Measure first instead of guessing the bottleneck\n" +
				"2. Profile with appropriate tools\n" +
				"3. Identify the critical path\n" +
				"4. Optimize the biggest bottleneck first\n" +
				"5. Measure again after each change\n" +
				"6. Consider caching, batching, parallelism\n" +
				"7. Document before/after metrics",
		},
	}
}
