package board

import "github.com/dkuznetsov/issueboard/internal/domain"

// Intent описывает запрошенную, но еще не примененную смену статуса.
// Reconciler сам список задач не меняет, применение остается за вызывающим.
type Intent struct {
	IssueId string
	Status  domain.Status
}

type IntentSink interface {
	MoveIssue(intent Intent)
}

// Reconciler сводит жест drag-and-drop к намерению сменить статус.
// Жизненный цикл: IDLE -> DRAGGING (DragStart) -> IDLE (DragEnd всегда).
type Reconciler struct {
	sink    IntentSink
	dragged *domain.Issue
}

func NewReconciler(sink IntentSink) *Reconciler {
	return &Reconciler{sink: sink}
}

func (r *Reconciler) Dragging() bool {
	return r.dragged != nil
}

// DragStart запоминает id и снимок перетаскиваемой задачи.
func (r *Reconciler) DragStart(issue *domain.Issue) {
	if issue == nil {
		return
	}
	snapshot := *issue
	r.dragged = &snapshot
}

// DragEnd разрешает цель сброса и при необходимости публикует Intent.
// Возвращает true, если Intent был отправлен. Состояние всегда
// сбрасывается в IDLE, независимо от исхода.
func (r *Reconciler) DragEnd(issues []*domain.Issue, overId string) bool {
	dragged := r.dragged
	r.dragged = nil

	if dragged == nil || overId == "" {
		return false
	}

	target, ok := resolveTarget(issues, overId)
	if !ok {
		// Неразрешимая цель сброса: молчаливый no-op
		return false
	}

	// Сброс в исходную колонку: намерение не публикуем
	if target == dragged.Status {
		return false
	}

	r.sink.MoveIssue(Intent{
		IssueId: dragged.Id,
		Status:  target,
	})
	return true
}

// resolveTarget: id колонки дает ее статус, иначе ищем задачу с таким id
// и берем ее текущий статус.
func resolveTarget(issues []*domain.Issue, overId string) (domain.Status, bool) {
	for _, status := range ColumnOrder {
		if string(status) == overId {
			return status, true
		}
	}

	for _, issue := range issues {
		if issue != nil && issue.Id == overId {
			return issue.Status, true
		}
	}

	return "", false
}
