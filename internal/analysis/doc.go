// Package analysis holds the workers that populate Gameday's task graph:
// one analyzer per angle on a matchup (recent-form momentum, weather,
// injuries, roster churn, venue splits, season stats, head-to-head,
// coaching tendencies) plus the predictor that folds their findings into a
// win probability.
//
// Workers communicate exclusively through the workflow payload using the
// Key* constants; each reads the keys its upstream nodes emitted and emits
// exactly one key of its own.
package analysis
