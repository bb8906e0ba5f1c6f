package internal

import "github.com/asticode/go-astits"

type sdtServiceDescriptor struct {
	ServiceName  string `json:"serviceName"`
	ProviderName string `json:"providerName"`
}

type sdtService struct {
	ServiceID   uint16                 `json:"serviceId"`
	Descriptors []sdtServiceDescriptor `json:"descriptors"`
}

type sdtInfo struct {
	SdtServices []sdtService `json:"SDT"`
}

func (p *JsonPrinter) PrintSdtInfo(sdt *astits.SDTData, show bool) {
	p.Print(toSdtInfo(sdt), show)
}

func toSdtInfo(sdt *astits.SDTData) sdtInfo {
	info := sdtInfo{
		SdtServices: make([]sdtService, 0, len(sdt.Services)),
	}
	for _, s := range sdt.Services {
		info.SdtServices = append(info.SdtServices, toSdtService(s))
	}
	return info
}

func toSdtService(s *astits.SDTDataService) sdtService {
	service := sdtService{
		ServiceID:   s.ServiceID,
		Descriptors: make([]sdtServiceDescriptor, 0, len(s.Descriptors)),
	}
	for _, d := range s.Descriptors {
		if d.Tag == astits.DescriptorTagService {
			service.Descriptors = append(service.Descriptors, sdtServiceDescriptor{
				ServiceName:  string(d.Service.Name),
				ProviderName: string(d.Service.Provider),
			})
		}
	}
	return service
}
