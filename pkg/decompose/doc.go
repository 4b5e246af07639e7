// Package decompose provides classical time series decomposition and the
// re-application of seasonal indices to forecast series.
//
// # Decomposition
//
// Split a series into trend, seasonal and residual components:
//
//	c := decompose.Decompose(history, 12, decompose.Multiplicative)
//	// c.Trend, c.Seasonal, c.Residual, c.Indices
//
// The trend is a centered moving average whose window equals the seasonal
// period, so the first and last period/2 trend positions are NaN. Series
// shorter than two full periods are not decomposed: every trend, seasonal and
// residual position is NaN.
//
// Multiplicative indices are normalised to average exactly 1. Additive
// indices are left as estimated.
//
// # Seasonal Adjustment
//
// Apply a seasonal component to a new forecast:
//
//	adjusted := decompose.Adjust(forecast, c.Seasonal, decompose.Multiplicative)
//
// # JSON
//
// Series marshals NaN and infinite values as null, so components can be
// returned directly from HTTP handlers.
package decompose
