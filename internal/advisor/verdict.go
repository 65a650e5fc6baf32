package advisor

import "strings"

// Verdict 是对模型自由文本回复的三态归一。
type Verdict string

const (
	VerdictApprove Verdict = "APPROVE"
	VerdictDeny    Verdict = "DENY"
	VerdictUnknown Verdict = "UNKNOWN"
)

// ParseVerdict 用大小写无关的子串匹配归一模型回复。
// DENY 优先于 APPROVE；两者都不含时返回 UNKNOWN。
// 注意：下游把 UNKNOWN 当作非拒绝继续执行（fail-open），
// 这是沿用线上已有行为，改成 fail-closed 前需要先改这里的约定。
func ParseVerdict(text string) Verdict {
	upper := strings.ToUpper(text)
	if strings.Contains(upper, string(VerdictDeny)) {
		return VerdictDeny
	}
	if strings.Contains(upper, string(VerdictApprove)) {
		return VerdictApprove
	}
	return VerdictUnknown
}
