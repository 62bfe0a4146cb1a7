package maintenance

import "time"

// StatusAt 保养状态推导，与订单共用同一套规则：
// 终态不变；now 在区间前为 RESERVED、区间内为 ACTIVE、区间后为 COMPLETED。
func StatusAt(current Status, start, end, now time.Time) Status {
	if current.Terminal() {
		return current
	}
	switch {
	case now.Before(start):
		return StatusReserved
	case now.After(end):
		return StatusCompleted
	default:
		return StatusActive
	}
}
