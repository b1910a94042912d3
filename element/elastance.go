package element

import "vcid/types"

// Elastance 虚拟倒电容策略，返回元件两端节点之间的扩散权重
// 返回 0 表示该元件不参与电荷扩散。
type Elastance func(c Component) float64

// NominalElastance 所有元件使用相同的名义倒电容 types.Elastance
func NominalElastance(Component) float64 { return types.Elastance }

// ConductanceElastance 电阻按电导加权(scale*G)，其余元件使用 scale
func ConductanceElastance(scale float64) Elastance {
	return func(c Component) float64 {
		if g, ok := c.(interface{ Conductance() float64 }); ok {
			return scale * g.Conductance()
		}
		return scale
	}
}
