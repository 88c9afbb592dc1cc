package board

import "github.com/dkuznetsov/issueboard/internal/domain"

// Фиксированный порядок колонок доски.
var ColumnOrder = []domain.Status{
	domain.StatusBacklog,
	domain.StatusInProgress,
	domain.StatusDone,
}

type Column struct {
	Status domain.Status
	Issues []*domain.Issue
}

// Partition раскладывает задачи по трем колонкам со строгим сравнением
// статуса. Задачи с неизвестным статусом попадают в Backlog, само
// значение статуса при этом не меняется.
func Partition(issues []*domain.Issue) []Column {
	byStatus := make(map[domain.Status][]*domain.Issue, len(ColumnOrder))
	for _, status := range ColumnOrder {
		byStatus[status] = make([]*domain.Issue, 0)
	}

	for _, issue := range issues {
		if issue == nil {
			continue
		}
		if _, ok := byStatus[issue.Status]; ok {
			byStatus[issue.Status] = append(byStatus[issue.Status], issue)
		} else {
			byStatus[domain.StatusBacklog] = append(byStatus[domain.StatusBacklog], issue)
		}
	}

	columns := make([]Column, 0, len(ColumnOrder))
	for _, status := range ColumnOrder {
		columns = append(columns, Column{
			Status: status,
			Issues: byStatus[status],
		})
	}
	return columns
}
