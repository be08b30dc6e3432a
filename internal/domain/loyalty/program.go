// Package loyalty 会员积分与等级规则
//
// 积分 = floor(实付金额 / 积分除数 × 当前等级倍率)
// 等级由累计积分决定：取阈值不超过累计积分的最高等级
package loyalty

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Tier 会员等级
type Tier string

const (
	TierBronze   Tier = "BRONZE"
	TierSilver   Tier = "SILVER"
	TierGold     Tier = "GOLD"
	TierPlatinum Tier = "PLATINUM"
)

// DefaultPointsDivisor 每10元积1分
var DefaultPointsDivisor = decimal.NewFromInt(10)

// TierRule 等级规则：累计积分达到Threshold即升级为Tier
type TierRule struct {
	Tier       Tier
	Threshold  int
	Multiplier decimal.Decimal
}

// DefaultTiers 默认等级表
func DefaultTiers() []TierRule {
	return []TierRule{
		{Tier: TierBronze, Threshold: 0, Multiplier: decimal.NewFromInt(1)},
		{Tier: TierSilver, Threshold: 500, Multiplier: decimal.RequireFromString("1.2")},
		{Tier: TierGold, Threshold: 2000, Multiplier: decimal.RequireFromString("1.5")},
		{Tier: TierPlatinum, Threshold: 5000, Multiplier: decimal.NewFromInt(2)},
	}
}

// Program 积分规则（不可变，可并发使用）
type Program struct {
	divisor decimal.Decimal
	tiers   []TierRule // 按阈值升序
}

// NewProgram 创建积分规则
// 校验：除数>0；首个等级阈值为0；阈值严格递增；倍率>=1；等级名不重复
func NewProgram(divisor decimal.Decimal, tiers []TierRule) (*Program, error) {
	if !divisor.IsPositive() {
		return nil, fmt.Errorf("积分除数必须大于0: %s", divisor)
	}
	if len(tiers) == 0 {
		return nil, fmt.Errorf("至少需要一个会员等级")
	}
	if tiers[0].Threshold != 0 {
		return nil, fmt.Errorf("基础等级%s的阈值必须为0", tiers[0].Tier)
	}

	seen := make(map[Tier]bool, len(tiers))
	one := decimal.NewFromInt(1)
	for i, t := range tiers {
		if t.Tier == "" {
			return nil, fmt.Errorf("第%d个等级缺少名称", i+1)
		}
		if seen[t.Tier] {
			return nil, fmt.Errorf("等级%s重复", t.Tier)
		}
		seen[t.Tier] = true

		if t.Multiplier.LessThan(one) {
			return nil, fmt.Errorf("等级%s的倍率不能小于1: %s", t.Tier, t.Multiplier)
		}
		if i > 0 && t.Threshold <= tiers[i-1].Threshold {
			return nil, fmt.Errorf("等级阈值必须严格递增: %s(%d) <= %s(%d)",
				t.Tier, t.Threshold, tiers[i-1].Tier, tiers[i-1].Threshold)
		}
	}

	cp := make([]TierRule, len(tiers))
	copy(cp, tiers)
	return &Program{divisor: divisor, tiers: cp}, nil
}

// DefaultProgram 默认规则：每10元1分，500/2000/5000升级
func DefaultProgram() *Program {
	p, err := NewProgram(DefaultPointsDivisor, DefaultTiers())
	if err != nil {
		panic(err)
	}
	return p
}

// BaseTier 新顾客的初始等级
func (p *Program) BaseTier() Tier {
	return p.tiers[0].Tier
}

// Tiers 等级表副本
func (p *Program) Tiers() []TierRule {
	cp := make([]TierRule, len(p.tiers))
	copy(cp, p.tiers)
	return cp
}

// Multiplier 等级倍率，未知等级按基础等级处理
func (p *Program) Multiplier(tier Tier) decimal.Decimal {
	for _, t := range p.tiers {
		if t.Tier == tier {
			return t.Multiplier
		}
	}
	return p.tiers[0].Multiplier
}

// PointsFor 计算本次消费获得的积分（向下取整，金额非正时为0）
func (p *Program) PointsFor(finalAmount decimal.Decimal, tier Tier) int {
	if !finalAmount.IsPositive() {
		return 0
	}
	return int(finalAmount.Div(p.divisor).Mul(p.Multiplier(tier)).Floor().IntPart())
}

// TierFor 累计积分对应的等级
func (p *Program) TierFor(points int) Tier {
	tier := p.tiers[0].Tier
	for _, t := range p.tiers {
		if points >= t.Threshold {
			tier = t.Tier
		}
	}
	return tier
}

// Accrual 一次积分累计的结果
type Accrual struct {
	Earned      int
	TotalPoints int
	Tier        Tier
	Upgraded    bool
}

// Accrue 按当前等级计算积分，再按累计后的总积分重新评定等级
// 等级只升不降：调高阈值后重新评定出的等级低于当前等级时保留当前等级
func (p *Program) Accrue(currentPoints int, currentTier Tier, finalAmount decimal.Decimal) Accrual {
	earned := p.PointsFor(finalAmount, currentTier)
	total := currentPoints + earned

	tier := p.TierFor(total)
	if p.rank(currentTier) > p.rank(tier) {
		tier = currentTier
	}
	return Accrual{
		Earned:      earned,
		TotalPoints: total,
		Tier:        tier,
		Upgraded:    p.rank(tier) > p.rank(currentTier),
	}
}

// rank 等级在等级表中的位置，未知等级返回-1
func (p *Program) rank(tier Tier) int {
	for i, t := range p.tiers {
		if t.Tier == tier {
			return i
		}
	}
	return -1
}
