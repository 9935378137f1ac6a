package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"shopassist/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// handleGetSettings returns the full runtime settings map.
func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.settings.Snapshot())
}

// handleUpdateSettings applies posted settings. Unknown keys are
// silently ignored; the response reports the subset that was applied.
func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var values map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&values); err != nil || len(values) == 0 {
		writeError(w, http.StatusBadRequest, "No settings provided")
		return
	}

	updated := s.settings.Update(values)
	writeJSON(w, http.StatusOK, map[string]interface{}{"updated": updated})
}

// handleListBarcodes returns every product in the catalog.
func (s *Server) handleListBarcodes(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if products == nil {
		products = []store.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// handleGetBarcode returns one product by its barcode.
func (s *Server) handleGetBarcode(w http.ResponseWriter, r *http.Request) {
	product, found, err := s.catalog.Get(r.PathValue("barcode"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Barcode not found")
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// handleAddBarcode creates a catalog entry. barcode, product_name and
// brand are required; allergies defaults to "none".
func (s *Server) handleAddBarcode(w http.ResponseWriter, r *http.Request) {
	var req store.Product
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Barcode == "" || req.ProductName == "" || req.Brand == "" {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	created, err := s.catalog.Add(req)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleDeleteBarcode removes a catalog entry.
func (s *Server) handleDeleteBarcode(w http.ResponseWriter, r *http.Request) {
	removed, err := s.catalog.Delete(r.PathValue("barcode"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "Barcode not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Barcode deleted"})
}
