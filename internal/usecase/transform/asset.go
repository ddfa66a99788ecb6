package transform

import (
	"math"

	"github.com/kailas-cloud/cyync-lookup/internal/domain/details"
	"github.com/kailas-cloud/cyync-lookup/internal/domain/record"
)

// HighRiskThreshold is the risk score above which an asset counts as high risk.
const HighRiskThreshold = 7

// StatusUnknown is the asset status used when the source has none.
const StatusUnknown = "unknown"

var riskAliases = []string{"riskScore", "riskLevel"}

// Asset normalizes one asset item. RiskScore keeps the source value as is;
// only numeric scores feed AssetStats.
func Asset(it record.Item) details.AssetRecord {
	rec := details.AssetRecord{
		ID:          it.String("id", "assetId"),
		Name:        it.String("name", "hostname", "deviceName"),
		IPAddress:   it.String("ipAddress", "ip"),
		MACAddress:  it.String("macAddress", "mac"),
		LastSeen:    it.String("lastSeen", "updatedAt"),
		Status:      it.String("status"),
		WorkspaceID: it.WorkspaceID(),
		Raw:         it,
	}
	if rec.Status == "" {
		rec.Status = StatusUnknown
	}
	if score, ok := it.First(riskAliases...); ok {
		rec.RiskScore = score
	}
	return rec
}

// Assets normalizes an asset group and computes its risk statistics.
func Assets(items []record.Item) details.Bucket[details.AssetRecord, details.AssetSummary] {
	recs := make([]details.AssetRecord, 0, len(items))
	for _, it := range items {
		recs = append(recs, Asset(it))
	}
	return details.Bucket[details.AssetRecord, details.AssetSummary]{
		Count:   len(items),
		Items:   recs,
		Summary: AssetStats(items),
	}
}

// AssetStats averages numeric risk scores (one decimal, 0 when none) and
// counts scores above HighRiskThreshold.
func AssetStats(items []record.Item) details.AssetSummary {
	var sum float64
	var scored, high int
	for _, it := range items {
		score, ok := it.Number(riskAliases...)
		if !ok {
			continue
		}
		sum += score
		scored++
		if score > HighRiskThreshold {
			high++
		}
	}
	s := details.AssetSummary{TotalAssets: len(items), HighRiskCount: high}
	if scored > 0 {
		s.AvgRiskScore = round1(sum / float64(scored))
	}
	return s
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
