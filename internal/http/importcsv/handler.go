package importcsv

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pocket/internal/http/api"
	httptransaction "github.com/MrJamesThe3rd/pocket/internal/http/transaction"
	"github.com/MrJamesThe3rd/pocket/internal/importer"
	"github.com/MrJamesThe3rd/pocket/internal/matching"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

const maxUploadSize = 10 << 20

type Handler struct {
	parser   *importer.Parser
	txSvc    *transaction.Service
	matchSvc *matching.Service
}

func NewHandler(parser *importer.Parser, txSvc *transaction.Service, matchSvc *matching.Service) *Handler {
	return &Handler{
		parser:   parser,
		txSvc:    txSvc,
		matchSvc: matchSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type importSuccessResponse struct {
	Imported     int                        `json:"imported"`
	Transactions []httptransaction.Response `json:"transactions"`
}

type conflictDTO struct {
	Incoming httptransaction.ExpenseDTO `json:"incoming"`
	Existing httptransaction.Response   `json:"existing"`
}

type importConflictResponse struct {
	New       []httptransaction.ExpenseDTO `json:"new"`
	Conflicts []conflictDTO                `json:"conflicts"`
}

type confirmRequest struct {
	Expenses []httptransaction.ExpenseDTO `json:"expenses"`
}

// importCSV records the uploaded file when none of its rows duplicates an
// existing entry. Otherwise nothing is written and the 409 body lists the
// clean rows and the conflicts, to be resent through /confirm.
func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.parser.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	owner := api.Owner(r)

	if err := h.matchSvc.Categorize(r.Context(), owner, params); err != nil {
		api.WriteError(w, err)
		return
	}

	result, err := h.txSvc.ImportExpenses(r.Context(), owner, params)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]httptransaction.ExpenseDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}

		for _, p := range result.New {
			resp.New = append(resp.New, httptransaction.ToExpenseDTO(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: httptransaction.ToExpenseDTO(c.Incoming),
				Existing: httptransaction.ToResponse(c.Existing),
			})
		}

		api.WriteJSON(w, http.StatusConflict, resp)

		return
	}

	api.WriteJSON(w, http.StatusCreated, toSuccessResponse(result.Imported))
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	params := make([]transaction.ExpenseParams, 0, len(req.Expenses))
	for _, e := range req.Expenses {
		params = append(params, e.Params())
	}

	txs, err := h.txSvc.CreateExpenses(r.Context(), api.Owner(r), params)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusCreated, toSuccessResponse(txs))
}

func toSuccessResponse(txs []*transaction.Transaction) importSuccessResponse {
	return importSuccessResponse{
		Imported:     len(txs),
		Transactions: httptransaction.ToResponseList(txs),
	}
}
