package booking

import "time"

// StatusAt 按对账时刻推导订单应处的状态：
//   - 终态保持不变（不复活）
//   - now < start           -> RESERVED
//   - start <= now <= end   -> ACTIVE（闭区间，取车日和还车日都算租期内）
//   - now > end             -> COMPLETED
//
// 纯函数、幂等：对同一 (current, start, end, now) 多次调用结果相同。
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
