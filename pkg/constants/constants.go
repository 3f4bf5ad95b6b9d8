package constants

import "time"

const (
	CHANNEL_SIZE = 100 // 通道大小

	DEFAULT_PAGE_SIZE = 20  // 默认分页大小
	MAX_PAGE_SIZE     = 100 // 分页大小上限

	UNIQUE_CODE_LENGTH = 12 // 用户唯一码长度

	STREAK_LOOKBACK_DAYS = 365 // 连续练习天数最多回溯一年

	REPORT_HIDE_THRESHOLD    = 5  // 举报达到该数量后隐藏帖子
	EXCELLENT_POST_THRESHOLD = 10 // 点赞达到该数量后成为优秀帖子

	DEFAULT_GROUP_MAX_MEMBERS = 50   // 群组默认人数上限
	MAX_GROUP_MAX_MEMBERS     = 1000 // 群组人数上限

	INVITATION_TTL = 7 * 24 * time.Hour // 群组邀请有效期

	REFERENCE_CACHE_TTL = 24 * time.Hour // 乐器、用户类型、成就列表缓存时间

	RECORDING_MAX_SIZE = 50 << 20 // 录音文件最大 50MB

	DATE_LAYOUT = "2006-01-02" // practice_date 存储格式
)
