package surfacearea

import "github.com/ansel1/merry"

const MaxBatchItems = 500

type BatchInput struct {
	Items []Input `json:"items"`
}

type BatchItem struct {
	Index  int         `json:"index"`
	Result *ResultView `json:"result,omitempty"`
	Error  *ErrorView  `json:"error,omitempty"`
}

type BatchResult struct {
	Count   int         `json:"count"`
	Failed  int         `json:"failed"`
	Results []BatchItem `json:"results"`
}

// CalculateBatch calculates every item independently; a failing item is
// reported in place and does not stop the others.
func CalculateBatch(in BatchInput) (BatchResult, error) {
	if len(in.Items) == 0 {
		return BatchResult{}, merry.New("no items").WithHTTPCode(400)
	}
	if len(in.Items) > MaxBatchItems {
		return BatchResult{}, merry.Errorf("too many items: %d > %d", len(in.Items), MaxBatchItems).WithHTTPCode(413)
	}
	out := BatchResult{Results: make([]BatchItem, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := Calculate(item)
		if err != nil {
			out.Failed++
			out.Results = append(out.Results, BatchItem{Index: i, Error: NewErrorView(err)})
			continue
		}
		out.Count++
		out.Results = append(out.Results, BatchItem{Index: i, Result: NewResultView(res)})
	}
	return out, nil
}
