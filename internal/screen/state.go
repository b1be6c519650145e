package screen

import "github.com/Makepad-fr/headlines/internal/model"

// State is exactly one of LoadingState, ErrorState or LoadedState.
type State interface {
	isState()
}

type LoadingState struct{}

type ErrorState struct {
	Message string
}

type LoadedState struct {
	Articles []model.Article
}

func (LoadingState) isState() {}
func (ErrorState) isState()   {}
func (LoadedState) isState()  {}
