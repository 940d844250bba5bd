package recommend

import "math"

// Cosine 计算两个向量的余弦相似度：dot(a,b) / (|a|·|b|)，取值 [-1,1]。
// 长度不一致或任一向量为零向量时返回 0。
// 本模型的向量分量非负，实际取值落在 [0,1]。
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// meanVector 计算若干同长度向量的逐分量算术平均。
// 输入为空时返回 nil。
func meanVector(vectors [][]float64) []float64 {
	if len(vectors) == 0 {
		return nil
	}
	mean := make([]float64, len(vectors[0]))
	for _, vec := range vectors {
		for i, x := range vec {
			mean[i] += x
		}
	}
	n := float64(len(vectors))
	for i := range mean {
		mean[i] /= n
	}
	return mean
}
