package sale

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateSaleNo 生成销售单号
// 格式：POS + 时间戳(秒) + 6位随机数，如POS1699248000123456
// 唯一性由数据库唯一索引兜底
func GenerateSaleNo() string {
	timestamp := time.Now().Unix()
	random := rand.Intn(1000000)
	return fmt.Sprintf("POS%d%06d", timestamp, random)
}
