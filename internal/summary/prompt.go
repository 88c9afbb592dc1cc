package summary

import (
	"fmt"
	"strings"

	"github.com/dkuznetsov/issueboard/internal/domain"
)

// EmptySummary возвращается без обращения к внешнему сервису,
// когда у пользователя нет задач.
const EmptySummary = "You don't have any issues yet. Create some issues to get an AI summary!"

const systemPrompt = "You are a helpful project management assistant that provides concise, actionable summaries."

type Stats struct {
	Total        int
	HighPriority int
	InProgress   int
	Done         int
	Backlog      int
}

// BuildStats считает метрики по списку задач. Приоритет и статус
// независимые оси, суммы по ним не обязаны совпадать.
func BuildStats(issues []*domain.Issue) Stats {
	s := Stats{Total: len(issues)}
	for _, issue := range issues {
		if issue.Priority == domain.PriorityHigh {
			s.HighPriority++
		}
		switch issue.Status {
		case domain.StatusInProgress:
			s.InProgress++
		case domain.StatusDone:
			s.Done++
		case domain.StatusBacklog:
			s.Backlog++
		}
	}
	return s
}

// BuildPrompt собирает промпт: статистика, блок HIGH-приоритетных задач,
// полный список и фиксированная инструкция из трех пунктов.
// Порядок задач сохраняется (вызывающий передает новые первыми).
func BuildPrompt(issues []*domain.Issue) string {
	stats := BuildStats(issues)

	highPriorityText := "None"
	if stats.HighPriority > 0 {
		lines := make([]string, 0, stats.HighPriority)
		n := 0
		for _, issue := range issues {
			if issue.Priority != domain.PriorityHigh {
				continue
			}
			n++
			lines = append(lines, fmt.Sprintf("%d. [%s] %s%s", n, issue.Status, issue.Title, descriptionSuffix(issue)))
		}
		highPriorityText = strings.Join(lines, "\n")
	}

	issueLines := make([]string, 0, len(issues))
	for i, issue := range issues {
		issueLines = append(issueLines, fmt.Sprintf("%d. [%s] %s (Priority: %s)%s",
			i+1, issue.Status, issue.Title, issue.Priority, descriptionSuffix(issue)))
	}

	return fmt.Sprintf(`You are a project management assistant. Analyze the following project data and provide a concise, actionable summary.

PROJECT STATISTICS:
- Total Issues: %d
- High Priority Issues: %d
- In Progress: %d
- Done: %d
- Backlog: %d

HIGH PRIORITY ISSUES (These should be solved first):
%s

ALL ISSUES:
%s

Please provide a summary that:
1. States the total number of issues created (%d)
2. Highlights which HIGH priority issues need to be solved (list them if any)
3. Provides overall project status and recommendations

Format your response in 3-4 clear sentences:`,
		stats.Total,
		stats.HighPriority,
		stats.InProgress,
		stats.Done,
		stats.Backlog,
		highPriorityText,
		strings.Join(issueLines, "\n"),
		stats.Total,
	)
}

func descriptionSuffix(issue *domain.Issue) string {
	if issue.Description == nil || *issue.Description == "" {
		return ""
	}
	return " - " + *issue.Description
}
