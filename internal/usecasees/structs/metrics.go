package structs

type MetricConst int

const (
	MetricOrderReplicated MetricConst = iota
	MetricOrderFailed
	MetricOrderCancelled
	MetricOrderReplaced
	MetricActionQueued
	MetricLocateCompleted
	MetricLocateFailed
	MetricTaskCancelled
)

func (m MetricConst) ToString() string {
	switch m {
	case MetricOrderReplicated:
		return "order_replicated_total"
	case MetricOrderFailed:
		return "order_failed_total"
	case MetricOrderCancelled:
		return "order_cancelled_total"
	case MetricOrderReplaced:
		return "order_replaced_total"
	case MetricActionQueued:
		return "action_queued_total"
	case MetricLocateCompleted:
		return "locate_completed_total"
	case MetricLocateFailed:
		return "locate_failed_total"
	case MetricTaskCancelled:
		return "task_cancelled_total"
	}
	return "unknown"
}
